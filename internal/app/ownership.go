package app

import (
	"context"
	"fmt"
)

type ResourceKind string

const (
	KindPost    ResourceKind = "post"
	KindComment ResourceKind = "comment"
)

// OwnerLookup returns the owner of a resource; found is false when it does not exist.
type OwnerLookup interface {
	OwnerID(ctx context.Context, id uint) (ownerID uint, found bool, err error)
}

type ownerSource struct {
	lookup   OwnerLookup
	notFound error
}

// OwnershipGuard allows a mutation only when the caller owns the resource.
// Owners never change after creation, so a passed check stays valid for the mutation that follows.
type OwnershipGuard struct {
	sources map[ResourceKind]ownerSource
}

func NewOwnershipGuard(posts, comments OwnerLookup) *OwnershipGuard {
	return &OwnershipGuard{
		sources: map[ResourceKind]ownerSource{
			KindPost:    {lookup: posts, notFound: ErrPostNotFound},
			KindComment: {lookup: comments, notFound: ErrCommentNotFound},
		},
	}
}

func (g *OwnershipGuard) Authorize(ctx context.Context, userID uint, kind ResourceKind, id uint) error {
	src, ok := g.sources[kind]
	if !ok {
		return fmt.Errorf("unknown resource kind %q", kind)
	}

	ownerID, found, err := src.lookup.OwnerID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return src.notFound
	}
	if ownerID != userID {
		return ErrForbidden
	}
	return nil
}
