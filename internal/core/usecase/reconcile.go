package usecase

import (
	"context"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

// reconciler merges the three listing sources into one collection. The remote
// store is authoritative once reachable; the local cache keeps the admin area
// working offline; the seed set covers the fresh-install case where neither
// has data. Reads never fail past this layer.
type reconciler struct {
	remote port.RemoteStorePort // nil when no remote credentials are configured
	cache  port.ListingCachePort
	seed   port.SeedSourcePort
}

func (r reconciler) listings(ctx context.Context, scope domain.Scope) []domain.ListingRecord {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "reconciler",
		"scope":     string(scope),
	})

	remoteRows, remoteOK := r.readRemote(ctx, scope, logger)
	if !remoteOK || len(remoteRows) == 0 {
		return r.localOnly(ctx, scope, logger)
	}

	cached := r.readCache(ctx, logger)
	if len(cached) == 0 {
		// Already ordered by the remote store.
		return remoteRows
	}

	// Locally-authored entries go first so a listing created while the remote
	// store was unreachable is not shadowed by a stale remote echo. Identity
	// for de-duplication is id OR slug, first occurrence wins.
	merged := mergeByIdentity(domain.FilterByScope(cached, scope), remoteRows)
	domain.SortByNewest(merged)

	logger.Debug("Merged remote and cached listings", port.Fields{
		"remote_count": len(remoteRows),
		"cache_count":  len(cached),
		"merged_count": len(merged),
	})
	return merged
}

func (r reconciler) readRemote(ctx context.Context, scope domain.Scope, logger port.LoggerPort) ([]domain.ListingRecord, bool) {
	if r.remote == nil {
		logger.Debug("Remote store not configured, using local sources", nil)
		return nil, false
	}

	var (
		rows []domain.ListingRecord
		err  error
	)
	if scope == domain.ScopePublished {
		rows, err = r.remote.SelectPublished(ctx)
	} else {
		rows, err = r.remote.SelectAll(ctx)
	}
	if err != nil {
		logger.Error("Remote read failed, falling back to local cache", err, nil)
		return nil, false
	}
	return rows, true
}

func (r reconciler) readCache(ctx context.Context, logger port.LoggerPort) []domain.ListingRecord {
	cached, err := r.cache.Read(ctx)
	if err != nil {
		logger.Error("Local cache read failed", err, nil)
		return nil
	}
	return cached
}

// localOnly serves a read entirely from the device: cache first, seed set when
// the cache is absent or empty.
func (r reconciler) localOnly(ctx context.Context, scope domain.Scope, logger port.LoggerPort) []domain.ListingRecord {
	cached := r.readCache(ctx, logger)
	if len(cached) > 0 {
		filtered := domain.FilterByScope(cached, scope)
		domain.SortByNewest(filtered)
		return filtered
	}

	seeded := domain.FilterByScope(r.seed.Generate(), scope)
	domain.SortByNewest(seeded)
	logger.Debug("Serving seed-derived listings", port.Fields{"count": len(seeded)})
	return seeded
}

// mergeByIdentity concatenates the groups keeping only the first record for
// every id and for every slug.
func mergeByIdentity(groups ...[]domain.ListingRecord) []domain.ListingRecord {
	seenID := make(map[string]struct{})
	seenSlug := make(map[string]struct{})

	var merged []domain.ListingRecord
	for _, group := range groups {
		for _, rec := range group {
			if _, ok := seenID[rec.ID]; ok {
				continue
			}
			if rec.Slug != "" {
				if _, ok := seenSlug[rec.Slug]; ok {
					continue
				}
			}
			seenID[rec.ID] = struct{}{}
			if rec.Slug != "" {
				seenSlug[rec.Slug] = struct{}{}
			}
			merged = append(merged, rec)
		}
	}
	return merged
}
