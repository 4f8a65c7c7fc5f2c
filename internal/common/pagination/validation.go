package pagination

import "fmt"

// Validate validates the request against the configuration.
// Returns an error if:
//   - take is less than 1 or greater than config.MaxTake
//   - any order directive is malformed
//
// The cursor is not inspected here; Apply decodes it.
func (r Request) Validate(config Config) error {
	if r.Take < 1 || (config.MaxTake > 0 && r.Take > config.MaxTake) {
		return fmt.Errorf("%w: take must be between 1 and %d", ErrInvalidTake, config.MaxTake)
	}
	if _, err := ParseOrder(r.Order); err != nil {
		return err
	}
	return nil
}

// WithDefaults applies default values from config to the request.
//
// Rules:
//   - If take <= 0, set to config.DefaultTake
//   - If take > config.MaxTake, cap to config.MaxTake
//   - If order is empty, set to config.DefaultOrder
func (r Request) WithDefaults(config Config) Request {
	if r.Take <= 0 {
		r.Take = config.DefaultTake
	}
	if config.MaxTake > 0 && r.Take > config.MaxTake {
		r.Take = config.MaxTake
	}
	if len(r.Order) == 0 {
		r.Order = append([]string(nil), config.DefaultOrder...)
	}
	return r
}
