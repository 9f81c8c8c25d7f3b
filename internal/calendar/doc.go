// Package calendar provides a read-only client for the Google Calendar
// API and the sync engine that imports remote events into the local
// event store.
//
// The client supports multi-account authentication using the Google
// OAuth2 flow. Imports are additive and deduplicated, so repeated sync
// runs never create copies of already imported events.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	syncer := calendar.NewSyncer(events, client)
//	result, err := syncer.Sync(ctx, calendar.SyncOptions{IncludeFuture: true})
package calendar
