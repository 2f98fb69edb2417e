package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortnite-bot/models"
)

// HandlerFunc is the body of a command.
type HandlerFunc func(c *Context) error

// Command describes one verb. A command without a Handler is a bare group: invoking it
// without a subcommand shows its help.
type Command struct {
	Name        string
	Aliases     []string
	Help        string
	Hidden      bool
	OwnerOnly   bool
	GuildOnly   bool
	Checks      []Check
	Params      []Param
	Handler     HandlerFunc
	Subcommands []*Command

	skill    string
	parent   *Command
	children map[string]*Command
}

// Skill is a bundle of related commands.
type Skill interface {
	Name() string
	Register(r *Registrar) error
}

// Registrar stages the commands of one skill until the skill finishes registering.
type Registrar struct {
	skill  string
	staged []*Command
}

func (r *Registrar) Skill() string {
	return r.skill
}

func (r *Registrar) Add(cmds ...*Command) {
	r.staged = append(r.staged, cmds...)
}

// Registry maps verbs to commands. It is built at startup and read-only afterwards.
type Registry struct {
	catalog models.FeatureCatalog
	root    map[string]*Command
	ordered []*Command
	skills  []string
}

var errEmptyName = errors.New("command name cannot be empty")

func NewRegistry(catalog models.FeatureCatalog) *Registry {
	r := &Registry{catalog: catalog, root: map[string]*Command{}}
	r.mustAdd(models.FeatureGeneral, helpCommand())
	return r
}

func (r *Registry) mustAdd(skill string, cmd *Command) {
	if err := r.commit(skill, []*Command{cmd}); err != nil {
		panic(err)
	}
}

// LoadSkill registers every command of s, or none of them when any fails to register.
// Top-level commands of skills that are not protected are gated on the skill's feature
// flag ahead of their own checks.
func (r *Registry) LoadSkill(s Skill) error {
	skill := models.NormalizeFeature(s.Name())
	reg := &Registrar{skill: skill}
	if err := s.Register(reg); err != nil {
		return fmt.Errorf("skill %s failed to register: %w", skill, err)
	}

	if !r.catalog.Protected(skill) {
		for _, cmd := range reg.staged {
			cmd.Checks = append([]Check{FeatureEnabled(skill)}, cmd.Checks...)
		}
	}
	if err := r.commit(skill, reg.staged); err != nil {
		return fmt.Errorf("skill %s failed to register: %w", skill, err)
	}
	return nil
}

func (r *Registry) commit(skill string, cmds []*Command) error {
	staged := map[string]*Command{}
	for _, cmd := range cmds {
		if err := link(skill, nil, cmd); err != nil {
			return err
		}
		for _, key := range cmd.keys() {
			if _, taken := r.root[key]; taken {
				return fmt.Errorf("command %q is already registered", key)
			}
			if _, taken := staged[key]; taken {
				return fmt.Errorf("command %q is registered twice", key)
			}
			staged[key] = cmd
		}
	}

	for key, cmd := range staged {
		r.root[key] = cmd
	}
	r.ordered = append(r.ordered, cmds...)
	if len(cmds) > 0 && !slices.Contains(r.skills, skill) {
		r.skills = append(r.skills, skill)
	}
	return nil
}

// link validates cmd and its subtree and wires the parent pointers.
func link(skill string, parent, cmd *Command) error {
	if cmd.Name == "" {
		return errEmptyName
	}
	for _, key := range cmd.keys() {
		if key == "" || strings.ContainsAny(key, " \t\n") {
			return fmt.Errorf("invalid command name %q", key)
		}
	}

	cmd.skill = skill
	cmd.parent = parent
	cmd.children = map[string]*Command{}
	for _, sub := range cmd.Subcommands {
		if err := link(skill, cmd, sub); err != nil {
			return err
		}
		for _, key := range sub.keys() {
			if _, taken := cmd.children[key]; taken {
				return fmt.Errorf("command %q is registered twice under %q", key, cmd.QualifiedName())
			}
			cmd.children[key] = sub
		}
	}
	return nil
}

func (c *Command) keys() []string {
	return append([]string{c.Name}, c.Aliases...)
}

func (c *Command) Skill() string {
	return c.skill
}

func (c *Command) Parent() *Command {
	return c.parent
}

func (c *Command) IsGroup() bool {
	return len(c.Subcommands) > 0
}

// QualifiedName is the canonical verb path, e.g. "settings prefix set".
func (c *Command) QualifiedName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.QualifiedName() + " " + c.Name
}

// Root returns the top-level command this one belongs to.
func (c *Command) Root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Lookup returns the top-level command addressed by name or alias.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.root[name]
	return cmd, ok
}

// Resolve walks words through nested groups to the deepest matching command and reports
// how many words were consumed.
func (r *Registry) Resolve(words []string) (*Command, int) {
	if len(words) == 0 {
		return nil, 0
	}
	cmd, ok := r.root[words[0]]
	if !ok {
		return nil, 0
	}
	n := 1
	for n < len(words) {
		sub, ok := cmd.children[words[n]]
		if !ok {
			break
		}
		cmd = sub
		n++
	}
	return cmd, n
}

// Commands lists the top-level commands in registration order.
func (r *Registry) Commands() []*Command {
	return slices.Clone(r.ordered)
}

// Skills lists the names of skills with at least one command, in load order.
func (r *Registry) Skills() []string {
	return slices.Clone(r.skills)
}
