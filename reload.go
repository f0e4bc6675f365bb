package fortune

import "context"

// Reload rebuilds the category snapshot from the store's provider and
// directory and publishes it. Queries running concurrently keep using the
// snapshot they started with.
//
// On error the current snapshot stays in place. Concurrent calls share a
// single rebuild. The rebuild ignores cancellation of any one caller; a
// caller whose ctx is done returns ctx.Err() without waiting for it.
func (s *Store) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := s.reloadGroup.DoChan(s.dir, func() (any, error) {
		snap, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		previous := s.snap.Swap(snap)
		s.log().Info("reloaded categories", "dir", s.dir,
			"previous_digest", previous.digest, "digest", snap.digest)
		return nil, nil
	})
	select {
	case res := <-ch:
		if res.Shared {
			s.log().Debug("reload shared with concurrent caller", "dir", s.dir)
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}
