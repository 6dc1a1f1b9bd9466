package rules

// SpawnCommands returns the queued commands in submission order: structure
// placements, removals and upgrades first, then mobile deployments. The
// slices are copies.
func (s *State) SpawnCommands() [2][]SpawnCommand {
	return [2][]SpawnCommand{
		append([]SpawnCommand(nil), s.build...),
		append([]SpawnCommand(nil), s.deploy...),
	}
}
