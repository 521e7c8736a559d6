// Package http exposes the site over net/http: the posts JSON API and its
// update protocol, server rendered pages, the live counter and the websocket
// feeds. Handlers stay thin and delegate to the post and counter services.
package http
