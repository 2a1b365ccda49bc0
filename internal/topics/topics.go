// Package topics carries the suggested-topic catalog shown on the setup
// screen, grouped by category. Served over the API so clients don't hardcode
// the list.
package topics

// Category is one group of suggested topics.
type Category struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// Catalog returns the suggested categories in display order.
func Catalog() []Category {
	return []Category{
		{
			Name: "Computer Science",
			Topics: []string{
				"Data Structures", "Algorithms", "Object-Oriented Programming",
				"Design Patterns", "Database Systems", "Operating Systems",
				"Computer Networks", "Web Development", "Machine Learning",
				"Cybersecurity", "Cloud Computing", "System Design",
			},
		},
		{
			Name: "Business",
			Topics: []string{
				"Marketing", "Finance", "Accounting", "Management",
				"Entrepreneurship", "Business Strategy", "Human Resources",
				"Supply Chain Management", "Business Analytics", "Economics",
			},
		},
		{
			Name: "Engineering",
			Topics: []string{
				"Electrical Engineering", "Mechanical Engineering",
				"Civil Engineering", "Chemical Engineering", "Biomedical Engineering",
				"Industrial Engineering", "Aerospace Engineering",
			},
		},
		{
			Name: "Healthcare",
			Topics: []string{
				"Anatomy", "Physiology", "Pharmacology", "Pathology",
				"Clinical Skills", "Medical Ethics", "Public Health",
			},
		},
		{
			Name: "Science",
			Topics: []string{
				"Physics", "Chemistry", "Biology", "Mathematics",
				"Environmental Science", "Astronomy", "Geology",
			},
		},
	}
}
