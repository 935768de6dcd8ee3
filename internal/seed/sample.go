// Package seed provides the built-in sample dataset and loads datasets from
// YAML files.
package seed

import "github.com/okian/jobmatch/internal/domain/model"

var sampleLocations = []model.Location{
	{Name: "Village A", Latitude: 28.6139, Longitude: 77.2090},
	{Name: "Town B", Latitude: 28.7041, Longitude: 77.1025},
	{Name: "City C", Latitude: 28.4595, Longitude: 77.0266},
	{Name: "Village D", Latitude: 28.5355, Longitude: 77.3910},
	{Name: "Town E", Latitude: 28.6562, Longitude: 77.2410},
}

var sampleRoads = []model.Road{
	{From: "Village A", To: "Town B", Distance: 15},
	{From: "Town B", To: "City C", Distance: 25},
	{From: "Village D", To: "Town E", Distance: 12},
	{From: "Town E", To: "City C", Distance: 20},
	{From: "Village A", To: "Village D", Distance: 18},
}

type sampleUser struct {
	id, name, education, location string
	age                           int
	skills                        []skillLevel
	preferences                   []string
	maxDistance                   float64
}

type skillLevel struct {
	name  string
	level int
}

var sampleUsers = []sampleUser{
	{
		id: "U001", name: "Rahul Kumar", age: 22, education: "High School", location: "Village A",
		skills:      []skillLevel{{"farming", 8}, {"driving", 7}, {"basic computer", 5}},
		preferences: []string{"agriculture"}, maxDistance: 30,
	},
	{
		id: "U002", name: "Priya Singh", age: 25, education: "Diploma", location: "Town B",
		skills:      []skillLevel{{"sewing", 9}, {"cooking", 8}, {"english", 6}, {"basic computer", 7}},
		preferences: []string{"textile", "food"}, maxDistance: 25,
	},
	{
		id: "U003", name: "Amit Patel", age: 28, education: "Graduate", location: "City C",
		skills:      []skillLevel{{"java", 8}, {"python", 7}, {"database", 6}, {"web development", 7}, {"english", 8}},
		preferences: []string{"technology"}, maxDistance: 50,
	},
	{
		id: "U004", name: "Sunita Devi", age: 20, education: "High School", location: "Village D",
		skills:      []skillLevel{{"farming", 6}, {"cooking", 8}, {"cleaning", 9}},
		preferences: []string{"agriculture", "domestic"}, maxDistance: 20,
	},
	{
		id: "U005", name: "Rajesh Verma", age: 30, education: "ITI", location: "Town E",
		skills:      []skillLevel{{"welding", 9}, {"electrical", 8}, {"plumbing", 7}, {"driving", 8}},
		preferences: []string{"manufacturing", "construction"}, maxDistance: 40,
	},
}

type sampleJob struct {
	id, title, company, location string
	salary                       float64
	skills                       []string
	description, jobType         string
	level                        int
	benefits                     []string
}

var sampleJobs = []sampleJob{
	{"J001", "Farm Worker", "Green Farms Ltd", "Village A", 18000, []string{"farming"}, "Work in agricultural fields, crop management", "full-time", 1, []string{"Free accommodation"}},
	{"J002", "Tractor Driver", "Modern Agriculture", "Town B", 22000, []string{"driving", "farming"}, "Operate tractors and farm machinery", "full-time", 2, nil},
	{"J003", "Tailor", "Fashion Stitch", "Town B", 20000, []string{"sewing"}, "Stitch and alter garments", "full-time", 2, nil},
	{"J004", "Garment Worker", "Textile Factory", "City C", 25000, []string{"sewing", "basic computer"}, "Work in garment manufacturing unit", "full-time", 1, []string{"Health insurance"}},
	{"J005", "Java Developer", "Tech Solutions", "City C", 45000, []string{"java", "database", "english"}, "Develop Java applications", "full-time", 3, []string{"Health insurance", "Work from home"}},
	{"J006", "Python Developer", "Data Analytics Corp", "City C", 50000, []string{"python", "database", "english"}, "Develop Python applications and data analysis", "full-time", 3, []string{"Health insurance", "Flexible hours"}},
	{"J007", "Web Developer", "Digital Creations", "City C", 40000, []string{"web development", "basic computer", "english"}, "Develop websites and web applications", "full-time", 2, nil},
	{"J008", "Cook", "Village Restaurant", "Village D", 18000, []string{"cooking"}, "Prepare food in restaurant kitchen", "full-time", 2, nil},
	{"J009", "Kitchen Helper", "Food Court", "Town E", 15000, []string{"cooking", "cleaning"}, "Assist in kitchen operations", "part-time", 1, nil},
	{"J010", "Housekeeper", "Home Services", "Village D", 16000, []string{"cleaning", "cooking"}, "Domestic cleaning and cooking services", "full-time", 1, nil},
	{"J011", "Welder", "Metal Works Ltd", "Town E", 28000, []string{"welding"}, "Metal welding and fabrication work", "full-time", 3, []string{"Safety equipment provided"}},
	{"J012", "Electrician", "Power Solutions", "Town E", 32000, []string{"electrical", "basic computer"}, "Electrical installation and maintenance", "full-time", 3, []string{"Health insurance"}},
	{"J013", "Plumber", "Water Works", "Town E", 25000, []string{"plumbing"}, "Plumbing installation and repair", "full-time", 2, nil},
	{"J014", "Truck Driver", "Logistics Corp", "Town B", 30000, []string{"driving", "english"}, "Drive trucks for goods transportation", "full-time", 2, []string{"Travel allowance"}},
	{"J015", "Data Entry Operator", "Office Solutions", "City C", 20000, []string{"basic computer", "english"}, "Enter data into computer systems", "full-time", 1, nil},
	{"J016", "Computer Operator", "Tech Support", "City C", 22000, []string{"basic computer", "english"}, "Basic computer operations and support", "full-time", 1, nil},
}

// Sample returns a fresh copy of the built-in dataset: five locations, five
// users, sixteen jobs and five roads. Users and jobs carry the coordinates
// of their location.
func Sample() model.Snapshot {
	coords := make(map[string]model.Location, len(sampleLocations))
	for _, l := range sampleLocations {
		coords[l.Name] = l
	}

	snap := model.Snapshot{
		Locations: append([]model.Location(nil), sampleLocations...),
		Roads:     append([]model.Road(nil), sampleRoads...),
	}

	for _, su := range sampleUsers {
		u := model.NewUser(su.id, su.name, su.age, su.education, su.location)
		loc := coords[su.location]
		u.SetCoordinates(loc.Latitude, loc.Longitude)
		u.SetMaxDistance(su.maxDistance)
		for _, s := range su.skills {
			u.AddSkill(s.name, s.level)
		}
		for _, p := range su.preferences {
			u.AddPreference(p)
		}
		snap.Registrations = append(snap.Registrations, model.Registration{User: u})
	}

	for _, sj := range sampleJobs {
		j := model.NewJob(sj.id, sj.title, sj.company, sj.location, sj.salary)
		loc := coords[sj.location]
		j.SetCoordinates(loc.Latitude, loc.Longitude)
		j.Description = sj.description
		j.JobType = sj.jobType
		j.SetExperienceLevel(sj.level)
		j.SetRequiredSkills(sj.skills...)
		for _, b := range sj.benefits {
			j.AddBenefit(b)
		}
		snap.Registrations = append(snap.Registrations, model.Registration{Job: j})
	}
	return snap
}
