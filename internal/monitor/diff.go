package monitor

import (
	"context"
	"ctwatch/pkg/domain"
	"ctwatch/pkg/serrors"
	"ctwatch/pkg/storage"
	"sync"
)

// Differ separates newly observed hostnames from the ones already known and
// records them. Calls are serialised so that read-known, compute and append
// happen as one step.
type Differ struct {
	mu      sync.Mutex
	storage storage.SubdomainStorage
}

// NewDiffer creates a Differ over the given known-subdomain store.
func NewDiffer(st storage.SubdomainStorage) *Differ {
	return &Differ{storage: st}
}

// Apply returns the candidates not yet known for name, in candidate order and
// without duplicates, and records them before returning.
//
// When the new hostnames cannot be recorded the delta is still returned along
// with a serrors.ErrPersistence error. When the known set cannot be read, the
// delta is nil and the error is serrors.ErrPersistence as well.
func (d *Differ) Apply(ctx context.Context, name string, candidates []string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	known, err := d.storage.KnownSubdomains(ctx, name)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrPersistence, err, "could not load known subdomains of %s", name)
	}

	seen := make(map[string]struct{}, len(known)+len(candidates))
	for _, h := range known {
		seen[h] = struct{}{}
	}

	var delta []string
	for _, h := range domain.NormalizeHostnames(candidates) {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		delta = append(delta, h)
	}
	if len(delta) == 0 {
		return nil, nil
	}

	if err := d.storage.AddSubdomains(ctx, name, delta); err != nil {
		return delta, serrors.Wrap(serrors.ErrPersistence, err, "could not save new subdomains of %s", name)
	}

	return delta, nil
}
