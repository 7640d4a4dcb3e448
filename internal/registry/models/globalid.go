package models

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "pidreg/pkg/domain-errors"
)

// GlobalIDSeparator joins the namespace, asset type, and sequence number
// segments of a global identifier.
const GlobalIDSeparator = "."

// GlobalID is the parsed form of a composed global identifier.
type GlobalID struct {
	Namespace   string
	AssetTypeID string
	Seq         int64
}

func (g GlobalID) String() string {
	return ComposeGlobalID(g.Namespace, g.AssetTypeID, g.Seq)
}

// ComposeGlobalID builds `{namespace}.{assetType}.{seq}`.
func ComposeGlobalID(namespace, assetTypeID string, seq int64) string {
	return fmt.Sprintf("%s%s%s%s%d", namespace, GlobalIDSeparator, assetTypeID, GlobalIDSeparator, seq)
}

// ParseGlobalID splits a composed identifier into its three segments.
// Namespaces may themselves contain the separator; the asset type and
// sequence segments may not, so parsing anchors on the rightmost two
// separators.
func ParseGlobalID(s string) (GlobalID, error) {
	seqIdx := strings.LastIndex(s, GlobalIDSeparator)
	if seqIdx < 0 {
		return GlobalID{}, dErrors.New(dErrors.CodeValidation, "global id must have namespace, asset type, and sequence segments")
	}
	seqSegment := s[seqIdx+1:]
	seq, err := strconv.ParseInt(seqSegment, 10, 64)
	// The segment must be the canonical rendering of the number; "01" or
	// "+1" would otherwise alias the identifier composed for sequence 1.
	if err != nil || seq < 1 || strconv.FormatInt(seq, 10) != seqSegment {
		return GlobalID{}, dErrors.New(dErrors.CodeValidation, "global id sequence segment must be a positive integer")
	}

	rest := s[:seqIdx]
	typeIdx := strings.LastIndex(rest, GlobalIDSeparator)
	if typeIdx < 0 {
		return GlobalID{}, dErrors.New(dErrors.CodeValidation, "global id must have namespace, asset type, and sequence segments")
	}

	gid := GlobalID{
		Namespace:   rest[:typeIdx],
		AssetTypeID: rest[typeIdx+1:],
		Seq:         seq,
	}
	if gid.Namespace == "" || gid.AssetTypeID == "" {
		return GlobalID{}, dErrors.New(dErrors.CodeValidation, "global id segments must be non-empty")
	}
	return gid, nil
}
