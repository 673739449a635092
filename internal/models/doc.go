// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the HTTP payloads of the Marquee API.

Two families of payloads live here:

  - APIResponse, Metadata and APIError: the envelope every /api/v1 endpoint
    returns, with catalog results and health reports as Data.
  - LegacyMessage, LegacyError and LegacyDirector: the bare {"mensaje": ...}
    and {"error": ...} bodies served on the original Spanish routes.

The domain result types themselves (MovieScore, ActorStats, ...) live in the
catalog package and are embedded as Data unchanged.
*/
package models
