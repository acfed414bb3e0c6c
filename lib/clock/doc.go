// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock parameter instead of calling time.Now
// or time.AfterFunc directly. Real() provides the standard library
// behavior; Fake() provides a deterministic clock for tests that
// advances only when Advance is called, firing scheduled callbacks
// synchronously in deadline order.
package clock
