package asset

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

type AssetStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *AssetStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestAssetStoreSuite(t *testing.T) {
	suite.Run(t, new(AssetStoreSuite))
}

func strPtr(v string) *string { return &v }

func (s *AssetStoreSuite) TestSequenceAssignment() {
	s.Run("assigns strictly increasing sequence numbers", func() {
		a1 := &models.Asset{OwnerID: 1, AssetTypeID: "file"}
		a2 := &models.Asset{OwnerID: 1, AssetTypeID: "file"}
		s.Require().NoError(s.store.Create(s.ctx, a1))
		s.Require().NoError(s.store.Create(s.ctx, a2))

		s.Equal(int64(1), a1.ID)
		s.Equal(int64(2), a2.ID)
	})

	s.Run("identical registrations stay distinct rows", func() {
		a3 := &models.Asset{OwnerID: 1, AssetTypeID: "file", LocalID: strPtr("dup")}
		a4 := &models.Asset{OwnerID: 1, AssetTypeID: "file", LocalID: strPtr("dup")}
		s.Require().NoError(s.store.Create(s.ctx, a3))
		s.Require().NoError(s.store.Create(s.ctx, a4))
		s.NotEqual(a3.ID, a4.ID)

		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(4, count)
	})
}

// TestConcurrentSequenceNumbers verifies N concurrent registrations produce
// N distinct, gap-free sequence numbers.
func (s *AssetStoreSuite) TestConcurrentSequenceNumbers() {
	const goroutines = 100

	var wg sync.WaitGroup
	seqs := make([]int64, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			a := &models.Asset{OwnerID: 1, AssetTypeID: "file"}
			if err := s.store.Create(s.ctx, a); err == nil {
				seqs[idx] = a.ID
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i, seq := range seqs {
		s.Equal(int64(i+1), seq, "sequence numbers must be distinct and gap-free")
	}
}

func (s *AssetStoreSuite) TestLookups() {
	withLocal := &models.Asset{OwnerID: 1, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar")}
	noLocal := &models.Asset{OwnerID: 1, AssetTypeID: "dataset"}
	otherOwner := &models.Asset{OwnerID: 2, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar")}
	s.Require().NoError(s.store.Create(s.ctx, withLocal))
	s.Require().NoError(s.store.Create(s.ctx, noLocal))
	s.Require().NoError(s.store.Create(s.ctx, otherOwner))

	s.Run("finds by sequence number", func() {
		found, err := s.store.FindBySeq(s.ctx, withLocal.ID)
		s.Require().NoError(err)
		s.Equal("file", found.AssetTypeID)
	})

	s.Run("triple lookup matches exact owner", func() {
		found, err := s.store.FindByOwnerTypeLocal(s.ctx, 2, "file", "hdfs://foo/bar")
		s.Require().NoError(err)
		s.Equal(otherOwner.ID, found.ID)
	})

	s.Run("triple lookup skips assets without local id", func() {
		_, err := s.store.FindByOwnerTypeLocal(s.ctx, 1, "dataset", "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate triples resolve to lowest sequence", func() {
		dup := &models.Asset{OwnerID: 1, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar")}
		s.Require().NoError(s.store.Create(s.ctx, dup))

		found, err := s.store.FindByOwnerTypeLocal(s.ctx, 1, "file", "hdfs://foo/bar")
		s.Require().NoError(err)
		s.Equal(withLocal.ID, found.ID)
	})

	s.Run("lists assets for one owner in sequence order", func() {
		listed, err := s.store.ListByOwner(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(listed, 3)
		s.True(sort.SliceIsSorted(listed, func(i, j int) bool { return listed[i].ID < listed[j].ID }))
		for _, a := range listed {
			s.Equal(int64(1), a.OwnerID)
		}
	})

	s.Run("unknown sequence returns ErrNotFound", func() {
		_, err := s.store.FindBySeq(s.ctx, 9000)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
