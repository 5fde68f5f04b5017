/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the windowing strategies of the pipeline stages from the windowing-config.yaml file,
// and reloads them when the file changes.
//
//	defaults:
//	  allowedLateness: 10s
//	strategies:
//	  clicks:
//	    window:
//	      fixed:
//	        length: 1m
//	    trigger:
//	      type: afterWatermark
//	    accumulationMode: discarding
//
// Strategy names are case-insensitive.
package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"sigs.k8s.io/yaml"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/shared/util"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/outputtime"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy"
	"github.com/numaproj/numaflow-windowing/pkg/window/trigger"
	"github.com/numaproj/numaflow-windowing/pkg/windowing"
)

const cacheSize = 1024

// GlobalConfig is the windowing configuration, it is safe for concurrent use.
type GlobalConfig struct {
	conf *config
	lock *sync.RWMutex
	// merged specs by name, purged on every reload
	cache *lru.Cache[string, v1alpha1.WindowingStrategy]
}

type config struct {
	// Defaults apply to every setting a strategy does not specify
	Defaults v1alpha1.WindowingStrategy `json:"defaults"`
	// Strategies are the named strategies of the pipeline stages
	Strategies map[string]v1alpha1.WindowingStrategy `json:"strategies"`
}

// GetDefaults returns the default strategy spec.
func (g *GlobalConfig) GetDefaults() v1alpha1.WindowingStrategy {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.conf.Defaults
}

// Names returns the sorted names of the configured strategies.
func (g *GlobalConfig) Names() []string {
	g.lock.RLock()
	defer g.lock.RUnlock()
	names := make([]string, 0, len(g.conf.Strategies))
	for name := range g.conf.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetStrategy returns the spec of the named strategy merged over the defaults. Unknown names get the defaults.
func (g *GlobalConfig) GetStrategy(name string) v1alpha1.WindowingStrategy {
	name = strings.ToLower(name)
	g.lock.RLock()
	defer g.lock.RUnlock()
	if spec, ok := g.cache.Get(name); ok {
		return spec
	}
	spec, ok := g.conf.Strategies[name]
	if !ok {
		spec = g.conf.Defaults
	} else {
		spec = spec.MergeOver(g.conf.Defaults)
	}
	g.cache.Add(name, spec)
	return spec
}

// StrategyFor builds the named strategy for elements of type T in windows of type W.
func StrategyFor[T any, W window.Window](g *GlobalConfig, name string) (*windowing.Strategy[T, W], error) {
	s, err := windowing.FromSpec[T, W](g.GetStrategy(name))
	if err != nil {
		return nil, fmt.Errorf("invalid windowing strategy %q, %w", name, err)
	}
	return s, nil
}

func (g *GlobalConfig) swap(conf *config) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.conf = conf
	g.cache.Purge()
}

// LoadConfig loads windowing-config.yaml from the directory given by NUMAFLOW_WINDOWING_CONFIG_DIR,
// /etc/numaflow by default.
func LoadConfig(onErrorReloading func(error)) (*GlobalConfig, error) {
	return LoadConfigFrom(util.LookupEnvStringOr(v1alpha1.EnvWindowingConfigDir, v1alpha1.DefaultWindowingConfigDir), onErrorReloading)
}

// LoadConfigFrom loads windowing-config.yaml from dir and watches it. A changed file that fails to parse
// or validate is reported to onErrorReloading and the previous configuration is kept.
func LoadConfigFrom(dir string, onErrorReloading func(error)) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigName(v1alpha1.DefaultWindowingConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration file. %w", err)
	}
	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, v1alpha1.WindowingStrategy](cacheSize)
	if err != nil {
		return nil, err
	}
	r := &GlobalConfig{
		conf:  conf,
		lock:  new(sync.RWMutex),
		cache: cache,
	}
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		cf, err := unmarshal(v)
		if err != nil {
			onErrorReloading(err)
			return
		}
		r.swap(cf)
	})
	return r, nil
}

// unmarshal decodes the settings through their JSON form, so durations parse the way the API types
// expect them.
func unmarshal(v *viper.Viper) (*config, error) {
	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration. %w", err)
	}
	conf := &config{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed unmarshal configuration file. %w", err)
	}
	if err := validate(conf); err != nil {
		return nil, fmt.Errorf("invalid configuration. %w", err)
	}
	return conf, nil
}

func validate(conf *config) error {
	var errs error
	check := func(name string, spec v1alpha1.WindowingStrategy) {
		if err := strategy.Validate(spec.Window); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
		if spec.Trigger != nil {
			if _, err := trigger.FromSpec(*spec.Trigger); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: invalid trigger, %w", name, err))
			}
		}
		if !spec.GetAccumulationMode().IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("%s: invalid accumulation mode %q", name, spec.GetAccumulationMode()))
		}
		if spec.GetAllowedLateness() < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, windowing.ErrNegativeAllowedLateness))
		}
		if _, err := outputtime.FromType(spec.GetOutputTime()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
		if !spec.GetClosingBehavior().IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("%s: invalid closing behavior %q", name, spec.GetClosingBehavior()))
		}
	}
	check("defaults", conf.Defaults)
	names := make([]string, 0, len(conf.Strategies))
	for name := range conf.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check(name, conf.Strategies[name])
	}
	return errs
}
