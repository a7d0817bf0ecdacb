package wander

// Identity is the current user or guest context, including its auth token.
// Guest identities carry no token and get no server-side session persistence.
type Identity struct {
	ID        string
	Token     string
	FirstName string
	LastName  string
	Email     string
	Guest     bool
}

// Authenticated reports whether the identity can make protected calls.
func (id Identity) Authenticated() bool { return id.Token != "" }

// Context holds the process-wide current identity with an explicit
// login/logout lifecycle. Exactly one identity is live at a time.
//
// Every Set and Clear increments the epoch. Async completions capture the
// epoch when issued and compare it on arrival, so results belonging to a
// previous identity are detectable and discardable.
//
// Context is not safe for concurrent use. All application state is mutated
// on a single cooperative loop.
type Context struct {
	identity Identity
	live     bool
	epoch    int
}

// NewContext creates an empty identity Context.
func NewContext() *Context {
	return &Context{}
}

// Set replaces the current identity. Setting the same identity again is
// harmless; it still advances the epoch so stale completions are invalidated.
func (c *Context) Set(id Identity) {
	c.identity = id
	c.live = true
	c.epoch++
}

// Clear removes the current identity (logout).
func (c *Context) Clear() {
	c.identity = Identity{}
	c.live = false
	c.epoch++
}

// Current returns the live identity, or false when none is set. Consumers
// that require a token and find none must treat it as a precondition
// failure, not a recoverable error.
func (c *Context) Current() (Identity, bool) {
	return c.identity, c.live
}

// Epoch returns the identity version. It changes on every Set or Clear.
func (c *Context) Epoch() int { return c.epoch }
