package service

import (
	"context"

	"github.com/mmynk/tripsplit/internal/storage"
)

// watch sends the full current record set on start and again after every
// change to collection, until ctx is done. Changes arriving while a
// snapshot is being read are coalesced into one more send.
func watch[T any](
	ctx context.Context,
	store storage.Store,
	collection storage.Collection,
	op string,
	snapshot func(context.Context) (*T, error),
	send func(*T) error,
) error {
	// Subscribe before the first read so no write falls in between.
	changes := store.Subscribe(ctx, collection)

	for {
		msg, err := snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return toConnectError(op, err)
		}
		if err := send(msg); err != nil {
			return err
		}

		if _, ok := <-changes; !ok {
			return nil
		}
	}
}
