package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type GlobalIDSuite struct {
	suite.Suite
}

func TestGlobalIDSuite(t *testing.T) {
	suite.Run(t, new(GlobalIDSuite))
}

func (s *GlobalIDSuite) TestCompose() {
	s.Equal("abc.file.1", ComposeGlobalID("abc", "file", 1))
	s.Equal("user23.dataset.345", ComposeGlobalID("user23", "dataset", 345))
}

func (s *GlobalIDSuite) TestParseRoundTrip() {
	cases := []GlobalID{
		{Namespace: "abc", AssetTypeID: "file", Seq: 1},
		{Namespace: "user23", AssetTypeID: "dataset", Seq: 345},
		{Namespace: "org.example", AssetTypeID: "service", Seq: 9000},
	}
	for _, want := range cases {
		got, err := ParseGlobalID(want.String())
		s.Require().NoError(err, "parsing %q", want.String())
		s.Equal(want, got)
	}
}

// Namespaces may contain the separator; parsing anchors on the rightmost
// two separators so the type and sequence segments win.
func (s *GlobalIDSuite) TestParseDottedNamespace() {
	gid, err := ParseGlobalID("a.b.c.file.42")
	s.Require().NoError(err)
	s.Equal("a.b.c", gid.Namespace)
	s.Equal("file", gid.AssetTypeID)
	s.Equal(int64(42), gid.Seq)
}

func (s *GlobalIDSuite) TestParseRejectsMalformed() {
	malformed := []string{
		"",
		"abc",
		"abc.file",
		"abc.file.notanumber",
		"abc.file.0",
		"abc.file.-3",
		"abc.file.01",
		"abc.file.+1",
		"abc.file. 1",
		"..1",
		"abc..1",
	}
	for _, in := range malformed {
		_, err := ParseGlobalID(in)
		s.Error(err, "input %q", in)
	}
}

func (s *GlobalIDSuite) TestAssetGlobalID() {
	a := &Asset{ID: 7, OwnerID: 1, AssetTypeID: "dataset"}
	s.Equal("abc.dataset.7", a.GlobalID("abc"))
}
