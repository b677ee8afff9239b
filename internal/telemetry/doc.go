// Package telemetry streams simulation snapshots to live viewers.
//
// SocketIO pushes `tick` and `agent` events to a socket.io server. Hub is
// the pull side: viewers connect over a websocket and receive every kept
// snapshot as a JSON text frame. Both are engine observers that never fail a
// tick; a slow or absent viewer only loses frames.
package telemetry
