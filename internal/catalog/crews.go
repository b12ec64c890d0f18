package catalog

// CrewAssignment is a precomputed crew plan shown on the crews page
type CrewAssignment struct {
	CrewID         string   `json:"crew_id" yaml:"crew_id"`
	Specialization string   `json:"specialization" yaml:"specialization"`
	AssignedAssets []string `json:"assigned_assets" yaml:"assigned_assets"`
	WorkHours      int      `json:"total_work_hours" yaml:"total_work_hours"`
	TravelSaved    string   `json:"travel_time_optimized" yaml:"travel_time_optimized"`
	PriorityScore  float64  `json:"priority_score" yaml:"priority_score"`
}

var CrewAssignments = []CrewAssignment{
	{
		CrewID:         "CREW-A01",
		Specialization: "Transmission Maintenance",
		AssignedAssets: []string{"AST-0001", "AST-0047", "AST-0089"},
		WorkHours:      32,
		TravelSaved:    "2.3 hours saved",
		PriorityScore:  0.94,
	},
	{
		CrewID:         "CREW-B03",
		Specialization: "Distribution Repair",
		AssignedAssets: []string{"AST-0012", "AST-0034", "AST-0156"},
		WorkHours:      28,
		TravelSaved:    "1.8 hours saved",
		PriorityScore:  0.87,
	},
	{
		CrewID:         "CREW-C07",
		Specialization: "Protection Systems",
		AssignedAssets: []string{"AST-0023", "AST-0078"},
		WorkHours:      24,
		TravelSaved:    "3.1 hours saved",
		PriorityScore:  0.91,
	},
}

var CrewCapacity = []Metric{
	{Label: "Available Crews", Value: "23", Delta: "+2"},
	{Label: "Scheduled Work Orders", Value: "67", Delta: "+12"},
	{Label: "Crew Utilization", Value: "87%", Delta: "+15%"},
	{Label: "Emergency Availability", Value: "4 crews"},
}

// Optimisation describes the scheduling formulation
var Optimisation = []Step{
	{Name: "Objective Function", Description: "Minimize (failure_risk × replacement_cost) + travel_time + crew_overtime"},
	{Name: "Constraints", Description: "Crew specialization matching, work hour limits, geographic proximity"},
	{Name: "Solution Method", Description: "Integer Linear Programming with genetic algorithm refinement"},
	{Name: "Optimization Results", Description: "34% improvement in crew efficiency, 67% reduction in emergency calls"},
}

// WeeklySchedule is the canned result of the weekly schedule action
var WeeklySchedule = []Step{
	{Name: "Total Assets Covered", Description: "67 high-risk assets"},
	{Name: "Estimated Completion", Description: "5.2 days (vs 7.8 days unoptimized)"},
	{Name: "Travel Distance Reduced", Description: "340 miles saved across all crews"},
	{Name: "Emergency Response Capacity", Description: "4 crews maintained for urgent failures"},
	{Name: "Cost Efficiency", Description: "$47,000 saved in overtime and travel expenses"},
}

// UnknownAssignments returns the assigned ids for which has reports false.
// Crew plans cover the full fleet, so a generated sample may not contain them.
func UnknownAssignments(c CrewAssignment, has func(id string) bool) []string {
	var missing []string
	for _, id := range c.AssignedAssets {
		if !has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
