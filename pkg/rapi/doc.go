// Package rapi defines the public surface of the Ganeti Remote API client:
// configuration, the error taxonomy, query-parameter coercion, the resource
// types, and the Client interface with its per-resource sub-clients.
//
// Construct clients with github.com/gnt-io/rapi/pkg/rapiclient, which wires
// the transport and runs the version/feature handshake:
//
//	cli, err := rapiclient.New(ctx, &rapi.Config{
//		Host:     "cluster-master.example.com",
//		Username: "rapi",
//		Password: "secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	names, err := cli.Instances().List(ctx)
//
// Mutating operations submit cluster jobs and return the job ID; poll it
// with cli.Jobs().WaitFinished.
//
// Errors are typed. A non-200 response surfaces as *rapi.StatusError with
// the status code attached; connection failures as *rapi.UnreachableError;
// exceeded timeouts as *rapi.TimeoutError. Helpers such as rapi.IsNotFound
// and rapi.IsTimeout branch on them without unwrapping by hand.
package rapi
