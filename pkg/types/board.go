package types

// GroupSpec describes one owner column (an agent) on an owner board.
type GroupSpec struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
	Color string `json:"color" yaml:"color"`
	Role  string `json:"role" yaml:"role"`
	Model string `json:"model" yaml:"model"`
}

// BoardConfig is the group configuration: named owner groups with display
// metadata plus a task list that references them by id.
type BoardConfig struct {
	Title    string      `json:"title" yaml:"title"`
	Subtitle string      `json:"subtitle" yaml:"subtitle"`
	Footer   string      `json:"footer" yaml:"footer"`
	Groups   []GroupSpec `json:"groups" yaml:"groups"`
	Birds    []GroupSpec `json:"birds" yaml:"birds"`
	Tasks    []JobRecord `json:"tasks" yaml:"tasks"`
}

// GroupSpecs returns the configured groups; "birds" is accepted as an alias
// for "groups" and appended after them.
func (c *BoardConfig) GroupSpecs() []GroupSpec {
	if len(c.Birds) == 0 {
		return c.Groups
	}
	specs := make([]GroupSpec, 0, len(c.Groups)+len(c.Birds))
	specs = append(specs, c.Groups...)
	return append(specs, c.Birds...)
}
