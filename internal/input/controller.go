package input

import "github.com/san-kum/matrixdemo/internal/sched"

// Direction is a page-cycling step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d < 0 {
		return "backward"
	}
	return "forward"
}

// Controller owns the forward and backward buttons. The two are independent:
// pressing both in the same poll yields one event for each.
type Controller struct {
	forward  *Button
	backward *Button
}

func NewController(forward, backward Pin, cfg Config, s sched.Scheduler) *Controller {
	return &Controller{
		forward:  NewButton(forward, cfg.Settle, s),
		backward: NewButton(backward, cfg.Settle, s),
	}
}

// Poll samples both buttons.
func (c *Controller) Poll() {
	c.forward.Poll()
	c.backward.Poll()
}

// Pending returns the unacknowledged events, forward first.
func (c *Controller) Pending() []Direction {
	var out []Direction
	if c.forward.Pending() {
		out = append(out, Forward)
	}
	if c.backward.Pending() {
		out = append(out, Backward)
	}
	return out
}

// Ack consumes the event for d.
func (c *Controller) Ack(d Direction) {
	if d == Forward {
		c.forward.Ack()
		return
	}
	c.backward.Ack()
}

func (c *Controller) Button(d Direction) *Button {
	if d == Forward {
		return c.forward
	}
	return c.backward
}
