// Package vis is the change-tracking and update-coalescing engine for
// visstream. A host application constructs Sources (mutable holders of a
// geometry.Value), adds them to an Engine under a named window, and
// mutates them through their typed setters. The Engine tracks which
// objects have pending mutations per window and streams coalesced scene
// updates to a single connected peer over a Transport.
//
// The frontend that renders these updates, and the framed binary socket
// it arrives over, are outside this package's scope: vis only produces
// encoded scene-update payloads (internal/wire) and hands them to
// whatever Transport is attached.
package vis
