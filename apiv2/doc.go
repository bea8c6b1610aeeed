// Package apiv2 provides a client for the modern osu! API.
//
// The modern API authenticates with an OAuth bearer token. This package
// implements the client-credentials grant only, which gives read access to
// public data without acting as a user.
//
// # Usage
//
// Register an OAuth application at https://osu.ppy.sh/home/account/edit and
// mint a token with its id and secret:
//
//	client, err := apiv2.Connect(ctx, "12345", "secret", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	bm, err := client.LookupBeatmapByID(ctx, 3536583)
//
// # Credentials
//
// A Credential is valid for a day and is never renewed behind the caller's
// back. Check Expired and swap in a fresh one:
//
//	if client.Credential().Expired() {
//		cred, err := apiv2.RequestToken(ctx, id, secret)
//		...
//		client = client.WithCredential(cred)
//	}
//
// Clients sharing a Credential may be used concurrently.
package apiv2
