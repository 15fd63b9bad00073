// Package live runs interactive routing sessions over a WebSocket.
//
// The server renders a page with a router per request (see pkg/server).
// When the page loads, the thin client script opens a WebSocket and sends a
// hello frame with the browser's URL and the hydration token embedded in the
// page. The Handler creates one router per connection on an Environment
// that mirrors the tab's history:
//
//   - Link clicks arrive as event frames and run the rendered handlers.
//   - Router pushes and replaces are sent to the client as push/replace
//     frames, which the client applies with history.pushState/replaceState.
//   - The browser's back/forward buttons arrive as pop frames and reach the
//     router only through the Environment's pop notification.
//   - Every published state is re-rendered and sent as an html frame.
//
// Frames are JSON objects with a "t" discriminator:
//
//	client → server  {"t":"hello","url":"...","token":"..."}
//	                 {"t":"event","hid":"h3","name":"click"}
//	                 {"t":"pop","url":"..."}
//	server → client  {"t":"push","url":"..."}
//	                 {"t":"replace","url":"..."}
//	                 {"t":"html","html":"..."}
//	                 {"t":"error","error":"..."}
package live
