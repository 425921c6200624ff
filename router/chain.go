package router

import "errors"

// ErrNextCalledTwice is returned when a handler invokes its continuation
// more than once.
var ErrNextCalledTwice = errors.New("stratum: next() called multiple times")

// Compose folds an ordered handler list into a single handler. Each
// handler's next continuation runs the remainder of the list, then the
// outer next (when non-nil). A handler calling next more than once fails
// with ErrNextCalledTwice.
func Compose(handlers []Handler) Handler {
	return func(c *Context, next Next) error {
		last := -1

		var dispatch func(i int) error
		dispatch = func(i int) error {
			if i <= last {
				return ErrNextCalledTwice
			}
			last = i

			if i == len(handlers) {
				if next != nil {
					return next()
				}
				return nil
			}

			h := handlers[i]
			return h(c, func() error {
				return dispatch(i + 1)
			})
		}

		return dispatch(0)
	}
}
