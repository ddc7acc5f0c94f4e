package menu

// Command is one entry of the main menu. Commands that list channels open a
// channel level first and run Action on the chosen row; the others run
// Action straight from the main menu.
type Command struct {
	ID          string
	Label       string
	Action      Action
	ListsItems  bool
	MultiSelect bool
}

// commands is the main menu, in display order.
var commands = []Command{
	{ID: "channels", Label: "Play a channel", Action: ChannelSelectAction, ListsItems: true},
	{ID: "add", Label: "Add a channel", Action: ChannelAddAction},
	{ID: "remove", Label: "Remove channels", Action: ChannelRemoveAction, ListsItems: true, MultiSelect: true},
	{ID: "copy", Label: "Copy a stream url", Action: ChannelCopyAction, ListsItems: true},
	{ID: "stop", Label: "Stop playback", Action: ChannelStopAction},
}

// Commands returns the main menu commands in display order.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// Node is a menu level definition. Loader fills the level; Action runs
// against the row chosen on it. Children are keyed by item id.
type Node struct {
	ID          string
	Loader      Loader
	Action      Action
	Children    map[string]*Node
	MultiSelect bool
}

// Registry indexes the menu nodes by id.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry builds the two level menu: the root lists the commands and
// every channel command gets a child level listing the catalog.
func BuildRegistry() *Registry {
	root := &Node{
		ID:       "root",
		Loader:   func(Context) ([]Item, error) { return RootItems(), nil },
		Children: make(map[string]*Node, len(commands)),
	}
	reg := &Registry{root: root, nodes: map[string]*Node{root.ID: root}}
	for _, cmd := range commands {
		node := &Node{ID: cmd.ID, Action: cmd.Action, MultiSelect: cmd.MultiSelect}
		if cmd.ListsItems {
			node.Loader = loadChannelMenu
		}
		root.Children[cmd.ID] = node
		reg.nodes[cmd.ID] = node
	}
	return reg
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by id.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// RootItems returns the main menu rows.
func RootItems() []Item {
	items := make([]Item, len(commands))
	for i, cmd := range commands {
		items[i] = Item{ID: cmd.ID, Label: cmd.Label}
	}
	return items
}

// ChannelLevels lists the menu levels whose items are channels.
func ChannelLevels() []string {
	var ids []string
	for _, cmd := range commands {
		if cmd.ListsItems {
			ids = append(ids, cmd.ID)
		}
	}
	return ids
}

// IsChannelLevel reports whether the level with id lists channels.
func IsChannelLevel(id string) bool {
	for _, cmd := range commands {
		if cmd.ID == id {
			return cmd.ListsItems
		}
	}
	return false
}
