package validators

import (
	"fmt"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	playgroundOnce sync.Once
	playgroundVld  *playground.Validate
)

func playgroundInstance() *playground.Validate {
	playgroundOnce.Do(func() {
		playgroundVld = playground.New(playground.WithRequiredStructEnabled())
	})
	return playgroundVld
}

// Tag validates a value against a go-playground/validator tag expression
// ("email", "fqdn", "hostname_port", ...). Msg is shown to the user when the
// tag does not match; an empty Msg falls back to a generic message.
type Tag struct {
	Rule string
	Msg  string
}

func (Tag) Name() string { return "tag" }

func (v Tag) Validate(value string) error {
	if value == "" {
		return nil
	}
	if err := playgroundInstance().Var(value, v.Rule); err != nil {
		if v.Msg != "" {
			return fmt.Errorf("%s", v.Msg)
		}
		return fmt.Errorf("value does not satisfy %q", v.Rule)
	}
	return nil
}

func (v Tag) ClientData() map[string]string {
	return map[string]string{"rule": v.Rule}
}
