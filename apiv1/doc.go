// Package apiv1 provides a client for the legacy osu! API.
//
// The legacy API is key-authenticated and read-only. Every call is a GET on
// https://osu.ppy.sh/api/<endpoint> carrying the key as the "k" query
// parameter. Records come back with every value encoded as a string.
//
// # Usage
//
// Request a key at https://osu.ppy.sh/p/api and create a client:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := apiv1.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mania := osu.ModeMania
//	user, err := client.GetUser(ctx, osu.UserID(18267600), apiv1.UserQuery{Mode: &mania})
//	switch {
//	case errors.Is(err, osu.ErrNoData):
//		// no such player
//	case err != nil:
//		log.Fatal(err)
//	}
//
// The request above is sent as get_user?k=...&m=3&u=18267600&type=id.
//
// # Limits
//
// The service allows 1200 requests per minute and 10 get_replay calls per
// minute. The client neither throttles nor retries.
package apiv1
