package userloader

import (
	"context"
	"time"

	"github.com/rpattn/filedash/internal/domain"
	"github.com/rpattn/filedash/internal/repository"

	"github.com/graph-gophers/dataloader"
)

// UserLoader batches user lookups by username within a request.
type UserLoader struct {
	Loader *dataloader.Loader
}

func NewUserLoader(repo repository.UserRepository) *UserLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		usernames := keys.Keys()

		users, err := repo.GetByUsernames(ctx, usernames)
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		byName := make(map[string]domain.User, len(users))
		for _, u := range users {
			byName[u.Username] = u
		}

		// Results follow key order; unknown usernames resolve to nil.
		results := make([]*dataloader.Result, len(keys))
		for i, name := range usernames {
			if u, ok := byName[name]; ok {
				results[i] = &dataloader.Result{Data: u}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}

	loader := dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(2*time.Millisecond))

	return &UserLoader{Loader: loader}
}

// LoadMany resolves usernames to users. Unknown usernames are absent from the
// returned map.
func (l *UserLoader) LoadMany(ctx context.Context, usernames []string) (map[string]domain.User, error) {
	thunk := l.Loader.LoadMany(ctx, dataloader.NewKeysFromStrings(usernames))
	values, errs := thunk()

	out := make(map[string]domain.User, len(values))
	for i, v := range values {
		if i < len(errs) && errs[i] != nil {
			return nil, errs[i]
		}
		if u, ok := v.(domain.User); ok {
			out[u.Username] = u
		}
	}
	return out, nil
}
