package steplib

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

// RedisSteps returns key/value steps bound to the named resource.
func RedisSteps(name string) *basil.Registry[World] {
	r := basil.NewRegistry[World]()

	r.GivenPattern(fmt.Sprintf(`^I set "%s" key "([^"]*)" with value "([^"]*)"$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			c, err := w.redis(name)
			if err != nil {
				return err
			}
			return c.Set(context.Background(), captures[1], captures[2], 0).Err()
		})

	r.GivenPattern(fmt.Sprintf(`^I delete "%s" key "([^"]*)"$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			c, err := w.redis(name)
			if err != nil {
				return err
			}
			return c.Del(context.Background(), captures[1]).Err()
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" key "([^"]*)" should exist$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			c, err := w.redis(name)
			if err != nil {
				return err
			}
			n, err := c.Exists(context.Background(), captures[1]).Result()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("key %q does not exist", captures[1])
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" key "([^"]*)" should not exist$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			c, err := w.redis(name)
			if err != nil {
				return err
			}
			n, err := c.Exists(context.Background(), captures[1]).Result()
			if err != nil {
				return err
			}
			if n != 0 {
				return fmt.Errorf("key %q exists", captures[1])
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" key "([^"]*)" should have value "([^"]*)"$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			c, err := w.redis(name)
			if err != nil {
				return err
			}
			got, err := c.Get(context.Background(), captures[1]).Result()
			if err == redis.Nil {
				return fmt.Errorf("key %q does not exist", captures[1])
			}
			if err != nil {
				return err
			}
			if got != captures[2] {
				return fmt.Errorf("key %q has value %q, expected %q", captures[1], got, captures[2])
			}
			return nil
		})

	return r
}
