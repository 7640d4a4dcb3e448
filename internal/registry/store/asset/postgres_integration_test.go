//go:build integration

package asset_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"pidreg/internal/registry/models"
	"pidreg/internal/registry/store/asset"
	assettypestore "pidreg/internal/registry/store/assettype"
	userstore "pidreg/internal/registry/store/user"
	"pidreg/pkg/platform/sentinel"
	"pidreg/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *asset.PostgresStore
	ownerID  int64
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = asset.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "assets", "asset_types", "users")
	s.Require().NoError(err)

	// Assets reference a user and an asset type; seed the parents here.
	users := userstore.NewPostgres(s.postgres.DB)
	owner := &models.User{Name: "User ABC", Namespace: "abc"}
	s.Require().NoError(users.Create(ctx, owner))
	s.ownerID = owner.ID

	assetTypes := assettypestore.NewPostgres(s.postgres.DB)
	s.Require().NoError(assetTypes.Create(ctx, &models.AssetType{ID: "file"}))
}

func strPtr(v string) *string { return &v }

func (s *PostgresStoreSuite) TestSequenceAssignment() {
	ctx := context.Background()

	first := &models.Asset{OwnerID: s.ownerID, AssetTypeID: "file"}
	s.Require().NoError(s.store.Create(ctx, first))
	s.Equal(int64(1), first.ID)

	second := &models.Asset{OwnerID: s.ownerID, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar")}
	s.Require().NoError(s.store.Create(ctx, second))
	s.Equal(int64(2), second.ID)

	found, err := s.store.FindBySeq(ctx, second.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.LocalID)
	s.Equal("hdfs://foo/bar", *found.LocalID)

	_, err = s.store.FindBySeq(ctx, 9000)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestForeignKeys() {
	ctx := context.Background()

	err := s.store.Create(ctx, &models.Asset{OwnerID: 9000, AssetTypeID: "file"})
	s.ErrorIs(err, sentinel.ErrNotFound, "unknown owner should be rejected")

	err = s.store.Create(ctx, &models.Asset{OwnerID: s.ownerID, AssetTypeID: "unknown"})
	s.ErrorIs(err, sentinel.ErrNotFound, "unknown asset type should be rejected")
}

func (s *PostgresStoreSuite) TestFindByOwnerTypeLocal() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, &models.Asset{OwnerID: s.ownerID, AssetTypeID: "file"}))
	s.Require().NoError(s.store.Create(ctx, &models.Asset{
		OwnerID: s.ownerID, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar"),
	}))
	// Duplicate triple; the earlier sequence number must win.
	s.Require().NoError(s.store.Create(ctx, &models.Asset{
		OwnerID: s.ownerID, AssetTypeID: "file", LocalID: strPtr("hdfs://foo/bar"),
	}))

	found, err := s.store.FindByOwnerTypeLocal(ctx, s.ownerID, "file", "hdfs://foo/bar")
	s.Require().NoError(err)
	s.Equal(int64(2), found.ID)

	_, err = s.store.FindByOwnerTypeLocal(ctx, s.ownerID, "file", "hdfs://other")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByOwner() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Create(ctx, &models.Asset{OwnerID: s.ownerID, AssetTypeID: "file"}))
	}

	listed, err := s.store.ListByOwner(ctx, s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal(int64(1), listed[0].ID)
	s.Equal(int64(3), listed[2].ID)

	listed, err = s.store.ListByOwner(ctx, 9000)
	s.Require().NoError(err)
	s.Empty(listed)
}

// TestConcurrentSequenceNumbers verifies that concurrent registrations all
// succeed and receive distinct sequence numbers.
func (s *PostgresStoreSuite) TestConcurrentSequenceNumbers() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	seqs := make([]int64, 0, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			a := &models.Asset{OwnerID: s.ownerID, AssetTypeID: "file"}
			if err := s.store.Create(ctx, a); err == nil {
				mu.Lock()
				seqs = append(seqs, a.ID)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	s.Require().Len(seqs, goroutines, "every create should succeed")

	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i := 1; i < len(seqs); i++ {
		s.NotEqual(seqs[i-1], seqs[i], "sequence numbers must be distinct")
	}
}
