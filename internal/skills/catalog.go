package skills

import "github.com/jonathan/skill-matcher/internal/types"

// Built-in canonical skill names, one list per category. Keywords are derived
// by lowercasing, so every name here must stay unique case-insensitively.
var (
	programmingLanguages = []string{
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C", "C#",
		"Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "R", "SQL",
		"Dart", "Scala", "Perl", "MATLAB", "Lua", "Haskell", "Elixir",
		"Objective-C", "Shell", "Bash", "PowerShell",
	}

	frameworks = []string{
		"React", "Angular", "Vue.js", "Next.js", "Node.js", "Express",
		"Django", "Flask", "Spring", "Spring Boot", ".NET", "ASP.NET",
		"Laravel", "Rails", "Ruby on Rails", "FastAPI", "NestJS", "Svelte",
		"Flutter", "React Native", "Tailwind CSS", "Bootstrap",
		"jQuery", "Ember.js", "Backbone.js", "Gatsby", "Nuxt.js",
		"Electron", "TensorFlow", "PyTorch", "Keras", "Scikit-learn",
		"Pandas", "NumPy", "OpenCV", "Hibernate", "Maven", "Gradle",
		"JUnit", "Jest", "Mocha", "Selenium", "Cypress",
	}

	toolsAndPlatforms = []string{
		"Docker", "Kubernetes", "Git", "GitHub", "GitLab", "Bitbucket",
		"AWS", "Azure", "GCP", "Google Cloud",
		"MongoDB", "PostgreSQL", "MySQL", "Redis", "SQLite", "Oracle",
		"Firebase",
		"Jenkins", "Travis CI", "CircleCI", "GitHub Actions",
		"Terraform", "Ansible", "Nginx", "Apache",
		"Linux", "Ubuntu", "Windows Server",
		"GraphQL", "REST", "gRPC",
		"Kafka", "RabbitMQ", "Elasticsearch",
		"Jira", "Confluence", "Slack", "Postman",
		"Figma", "Adobe XD", "Sketch",
		"Heroku", "Vercel", "Netlify", "DigitalOcean",
		"Webpack", "Vite", "Babel",
		"Spark", "Airflow", "Hadoop",
		"Tableau", "Power BI",
		"Unity", "Unreal Engine",
		"Xcode", "Android Studio",
		"VS Code", "IntelliJ",
	}

	concepts = []string{
		"Machine Learning", "Deep Learning", "NLP",
		"Natural Language Processing", "Computer Vision",
		"Data Science", "Data Analytics", "Data Engineering",
		"DevOps", "CI/CD", "Agile", "Scrum",
		"Microservices", "Blockchain", "Cloud Computing",
		"Cybersecurity", "Network Security",
		"TDD", "Test Driven Development",
		"OOP", "Object Oriented Programming",
		"Functional Programming",
		"RESTful API", "Web3", "Smart Contracts",
		"ETL", "Data Warehousing", "Data Modeling",
		"System Design", "Design Patterns",
		"Embedded Systems", "IoT",
		"AR", "VR", "Augmented Reality", "Virtual Reality",
	}
)

// DefaultCategoryLists returns the built-in dictionary source lists.
func DefaultCategoryLists() []CategoryList {
	return []CategoryList{
		{Category: types.CategoryLanguage, Skills: programmingLanguages},
		{Category: types.CategoryFramework, Skills: frameworks},
		{Category: types.CategoryTool, Skills: toolsAndPlatforms},
		{Category: types.CategoryConcept, Skills: concepts},
	}
}
