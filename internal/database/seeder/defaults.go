package seeder

// Defaults returns the seeders in dependency order: skills before the paths
// that reference them.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{Items: DefaultSkills},
		CareerPathsSeeder{Paths: DefaultPaths},
	}
}
