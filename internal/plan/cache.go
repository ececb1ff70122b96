// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

package plan

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ouroboroscoding/define-cli/internal/define"
)

// Cache memoizes plans per entity. Building a plan is a pure function
// of an immutable entity, so entries are keyed by entity identity and
// only first population needs coordination.
type Cache struct {
	plans sync.Map // *define.Entity -> *Plan
	group singleflight.Group
}

// Get returns the cached plan for e, building it on first use. Callers
// racing on the same entity share one build.
func (c *Cache) Get(e *define.Entity) (*Plan, error) {
	if cached, ok := c.plans.Load(e); ok {
		return cached.(*Plan), nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%p", e), func() (any, error) {
		built, err := Build(e)
		if err != nil {
			return nil, err
		}
		c.plans.Store(e, built)
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}
