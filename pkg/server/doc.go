// Package server is the HTTP entry point for vroute applications.
//
// Each page request builds its own router from the absolute request URL
// over a static environment, renders the document shell around it and
// embeds a signed hydration token. Live sessions, the client script and
// the metrics endpoint are mounted next to the pages on a chi router:
//
//	srv, err := server.New(server.Config{
//	    Table:  table,
//	    Signer: hydrate.NewSigner(secret),
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
