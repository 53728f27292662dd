// Package rapiclient is the primary entry point for constructing a Ganeti
// RAPI client that implements the rapi.Client interface.
//
// It layers configuration, the HTTP transport, and the one-time
// version/feature handshake on top of the types defined in the rapi package.
// Most applications should import rapiclient to build a client, then use the
// returned rapi.Client to access resource clients, for example Instances(),
// Nodes(), Jobs().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/gnt-io/rapi/pkg/rapi"
//	  "github.com/gnt-io/rapi/pkg/rapiclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := rapiclient.New(ctx, &rapi.Config{
//	    Host:     "cluster-master.example.com",
//	    Username: "rapi",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  names, err := cli.Instances().List(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  for _, name := range names {
//	    log.Println(name)
//	  }
//	}
//
// Deployments that issue many concurrent requests from one goroutine can
// select the concurrent transport with Config.NonBlocking; the client
// surface and error contract are identical.
package rapiclient
