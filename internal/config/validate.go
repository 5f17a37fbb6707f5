package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artshishkin/video-filter/internal/domain/operations"
	"github.com/artshishkin/video-filter/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideos(); err != nil {
		return err
	}
	if err := c.validateFilter(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateVideos() error {
	if strings.TrimSpace(c.Videos.Directory) == "" {
		return errors.New("videos.directory must be set")
	}
	if len(c.Videos.Extensions) == 0 {
		return errors.New("videos.extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateFilter() error {
	seq, err := c.Sequence()
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return errors.New("filter.sequence must name at least one operation")
	}
	tpls := c.TemplateSet()
	for _, op := range seq {
		spec, err := operations.Lookup(op)
		if err != nil {
			return fmt.Errorf("filter.sequence: %w", err)
		}
		if err := operations.ValidateTemplate(op, tpls[op]); err != nil {
			return fmt.Errorf("filter.templates.%s: %w", spec.Key, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
}
