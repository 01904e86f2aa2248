package config

import "fmt"

type ConfigInitError struct {
	Err error
}

func (e *ConfigInitError) Error() string {
	return fmt.Sprintf("failed to initialize config: %v", e.Err)
}

func (e *ConfigInitError) Unwrap() error {
	return e.Err
}
