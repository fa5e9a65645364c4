// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

/*
Package supervisor runs Quotient's long-lived services under a suture v4 tree.

Services are grouped into three layers so a crash restarts only its own layer:

	RootSupervisor ("quotient")
	├── DataSupervisor ("data-layer")
	│   ├── store value-log GC (badger backend only)
	│   └── trending snapshot publisher
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── websocket bridge (broker -> hub)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through sutureslog
into the zerolog stream.

Typical wiring in main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)

Services implement suture.Service: Serve(ctx) blocks until ctx is cancelled
and returns an error to request a restart.
*/
package supervisor
