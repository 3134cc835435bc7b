package booking

type Specialisation string

const (
	SpecialisationBeards   Specialisation = "BEARDS"
	SpecialisationHaircuts Specialisation = "HAIRCUTS"
)

var Specialisations = []Specialisation{SpecialisationBeards, SpecialisationHaircuts}

type Service string

const (
	ServiceHaircut   Service = "HAIRCUT"
	ServiceShaving   Service = "SHAVING"
	ServiceCombo     Service = "COMBO"
	ServiceFatherSon Service = "FATHERSON"
	ServiceJunior    Service = "JUNIOR"
)

var Services = []Service{ServiceHaircut, ServiceShaving, ServiceCombo, ServiceFatherSon, ServiceJunior}

// Permission scopes granted by the identity provider.
const (
	ScopeReadAppointmentsData = "read:appointments_data"
	ScopeReadBarberData       = "read:barber_data"
	ScopeCreateBarber         = "create:barber"
	ScopeUpdateBarber         = "update:barber"
)
