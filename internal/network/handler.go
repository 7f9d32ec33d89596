package network

// EventHandler connects the transport to the game. All three methods are
// called from the hub goroutine only, one at a time.
type EventHandler interface {
	OnConnect(c *Client)
	OnDisconnect(c *Client)
	OnMessage(c *Client, msg Message)
}
