package models

// Race constants
const (
	RaceDwarf  = "Dwarf"
	RaceHuman  = "Human"
	RaceElf    = "Elf"
	RaceHobbit = "Hobbit"
)

// Class constants
const (
	ClassWizard    = "Wizard"
	ClassWarrior   = "Warrior"
	ClassRanger    = "Ranger"
	ClassEnchanter = "Enchanter"
)

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Races, Classes and Genders list the allowed values in display order
var (
	Races   = []string{RaceDwarf, RaceHuman, RaceElf, RaceHobbit}
	Classes = []string{ClassWizard, ClassWarrior, ClassRanger, ClassEnchanter}
	Genders = []string{GenderMale, GenderFemale}
)

// ValidRaces is a map of valid race names
var ValidRaces = setOf(Races)

// ValidClasses is a map of valid class names
var ValidClasses = setOf(Classes)

// ValidGenders is a map of valid gender names
var ValidGenders = setOf(Genders)

// IsValidRace checks if a race name is valid
func IsValidRace(race string) bool {
	return ValidRaces[race]
}

// IsValidClass checks if a class name is valid
func IsValidClass(class string) bool {
	return ValidClasses[class]
}

// IsValidGender checks if a gender name is valid
func IsValidGender(gender string) bool {
	return ValidGenders[gender]
}

func setOf(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
