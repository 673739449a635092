// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervisor events name it.

HTTP Server (HTTPServerService):
  - Binds a fresh listener on every Serve, so supervisor restarts rebind
  - Drains in-flight requests on shutdown, then force-closes after the timeout
  - Exposes Ready and Addr once listening

Catalog Reload (ReloadService):
  - Watches local source files with fsnotify and debounces bursts of writes
  - Refreshes remote sources on a fixed interval
  - Throttles watch-triggered reloads with a token bucket (golang.org/x/time/rate)
  - A failed reload is logged and the previous catalog stays live

Returning an error from Serve asks the supervisor to restart the service
with backoff; returning ctx.Err() after cancellation is a clean stop.
*/
package services
