// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NamePlaceholder is replaced, in the output of a job rendered for each
// node, with the lower snake case name of the node.
const NamePlaceholder = "{name}"

// Config is the configuration read by the run command.
type Config struct {
	Schema   stringList `yaml:"schema"`
	Syntax   string     `yaml:"syntax"`
	FormatGo bool       `yaml:"format_go"`
	Jobs     []Job      `yaml:"jobs"`
}

// Job is a template to render.
type Job struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
	EachNode bool   `yaml:"each_node"` // render the template as node template for each node
	Syntax   string `yaml:"syntax"`    // if not empty, overrides the syntax of the configuration
}

// stringList is a list of strings that, in YAML, can also be written as a
// single string.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = stringList{value.Value}
		return nil
	}
	var list []string
	err := value.Decode(&list)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

var errNoJobs = errors.New("no jobs")

// loadConfig reads the configuration file with the given name. Relative
// paths in the configuration are resolved against the directory of the
// file.
func loadConfig(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var config Config
	err = dec.Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	err = config.validate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	config.resolve(filepath.Dir(name))
	return &config, nil
}

func (c *Config) validate() error {
	if len(c.Schema) == 0 {
		return errors.New("missing schema")
	}
	if len(c.Jobs) == 0 {
		return errNoJobs
	}
	for i, job := range c.Jobs {
		switch {
		case job.Template == "":
			return fmt.Errorf("job %d: missing template", i+1)
		case job.Output == "":
			return fmt.Errorf("job %d: missing output", i+1)
		case job.EachNode && !strings.Contains(job.Output, NamePlaceholder):
			return fmt.Errorf("job %d: output of a job for each node must contain %s", i+1, NamePlaceholder)
		}
	}
	return nil
}

func (c *Config) resolve(dir string) {
	join := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	for i, s := range c.Schema {
		c.Schema[i] = join(s)
	}
	for i := range c.Jobs {
		c.Jobs[i].Template = join(c.Jobs[i].Template)
		c.Jobs[i].Output = join(c.Jobs[i].Output)
	}
}
