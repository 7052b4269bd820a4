// Package di provides dependency injection configuration for warad-t.
package di

import (
	"github.com/samber/do/v2"

	"github.com/justyntemme/warad-t/internal/api"
	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/di/providers"
	"github.com/justyntemme/warad-t/internal/session"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Reading
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideClient)
	do.Provide(injector, providers.ProvideSlot)
	do.Provide(injector, providers.ProvideLibrary)

	return injector
}

// Bootstrap initializes the services the reader needs. Configuration may be
// changed between loading it and calling Bootstrap.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.LoggerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*api.Client](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SlotHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*session.Library](injector); err != nil {
		return err
	}
	return nil
}
