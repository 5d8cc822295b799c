package ranking

import "github.com/jonathan/skill-matcher/internal/types"

// builtinRoles is the stock role table, in tie-break order.
var builtinRoles = []types.RoleProfile{
	{
		Name:           "Backend Developer",
		ExpectedSkills: []string{
			"Node.js", "Express", "Python", "Django", "Flask", "FastAPI", "Java",
			"Spring", "Spring Boot", "MongoDB", "PostgreSQL", "MySQL", "Redis", "SQL",
			"REST", "GraphQL", "Docker", "Git", "Linux",
		},
	},
	{
		Name:           "Frontend Developer",
		ExpectedSkills: []string{
			"React", "JavaScript", "TypeScript", "HTML", "CSS", "Vue.js", "Angular",
			"Next.js", "Svelte", "Tailwind CSS", "Bootstrap", "Webpack", "Vite",
			"Jest", "Cypress", "Git", "Figma",
		},
	},
	{
		Name:           "Full Stack Developer",
		ExpectedSkills: []string{
			"React", "Node.js", "JavaScript", "TypeScript", "Express", "MongoDB",
			"PostgreSQL", "SQL", "REST", "GraphQL", "Docker", "Git", "Next.js",
			"Tailwind CSS", "Firebase",
		},
	},
	{
		Name:           "ML Engineer",
		ExpectedSkills: []string{
			"Python", "TensorFlow", "PyTorch", "Keras", "Scikit-learn", "NLP",
			"Computer Vision", "Deep Learning", "Machine Learning", "Pandas", "NumPy",
			"Docker", "SQL", "Git",
		},
	},
	{
		Name:           "Data Scientist",
		ExpectedSkills: []string{
			"Python", "R", "SQL", "Machine Learning", "Data Science", "Pandas",
			"NumPy", "Scikit-learn", "TensorFlow", "Tableau", "Power BI",
			"Data Analytics", "Statistics", "NLP", "Deep Learning",
		},
	},
	{
		Name:           "Data Engineer",
		ExpectedSkills: []string{
			"Python", "SQL", "Kafka", "Spark", "Airflow", "AWS", "GCP", "ETL",
			"Data Warehousing", "Data Modeling", "PostgreSQL", "MongoDB", "Redis",
			"Docker", "Hadoop", "Elasticsearch",
		},
	},
	{
		Name:           "Java Developer",
		ExpectedSkills: []string{
			"Java", "Spring", "Spring Boot", "Hibernate", "Maven", "Gradle", "JUnit",
			"SQL", "PostgreSQL", "MySQL", "Oracle", "REST", "Microservices", "Docker",
			"Git",
		},
	},
	{
		Name:           "Python Developer",
		ExpectedSkills: []string{
			"Python", "Django", "Flask", "FastAPI", "PostgreSQL", "MongoDB", "Redis",
			"SQL", "REST", "Docker", "Git", "Linux", "Pandas", "NumPy", "Celery",
		},
	},
	{
		Name:           "DevOps Engineer",
		ExpectedSkills: []string{
			"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Jenkins",
			"GitHub Actions", "Terraform", "Ansible", "CI/CD", "Linux", "Git",
			"Nginx", "Shell", "Bash", "Python",
		},
	},
	{
		Name:           "Cloud Engineer",
		ExpectedSkills: []string{
			"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes",
			"Terraform", "Linux", "CI/CD", "Jenkins", "Python", "Shell", "Bash",
			"Nginx",
		},
	},
	{
		Name:           "Mobile Developer",
		ExpectedSkills: []string{
			"Flutter", "React Native", "Dart", "Swift", "Kotlin", "Java", "Firebase",
			"REST", "Android Studio", "Xcode", "Git", "TypeScript", "JavaScript",
		},
	},
	{
		Name:           "iOS Developer",
		ExpectedSkills: []string{
			"Swift", "Objective-C", "Xcode", "Firebase", "REST", "Git", "UIKit",
			"SwiftUI", "CocoaPods",
		},
	},
	{
		Name:           "Android Developer",
		ExpectedSkills: []string{
			"Kotlin", "Java", "Android Studio", "Firebase", "REST", "Git", "Jetpack",
			"Gradle", "Room",
		},
	},
	{
		Name:           "QA / Test Engineer",
		ExpectedSkills: []string{
			"Selenium", "Cypress", "JUnit", "Jest", "Mocha", "TDD", "CI/CD", "Python",
			"JavaScript", "Postman", "Git", "Jira", "Agile",
		},
	},
	{
		Name:           "Cybersecurity Analyst",
		ExpectedSkills: []string{
			"Cybersecurity", "Network Security", "Linux", "Python", "Shell", "Bash",
			"Firewalls", "Penetration Testing", "AWS", "Docker", "Git",
		},
	},
	{
		Name:           "AI Research Engineer",
		ExpectedSkills: []string{
			"Python", "TensorFlow", "PyTorch", "Keras", "Deep Learning", "NLP",
			"Computer Vision", "Machine Learning", "NumPy", "Pandas", "R", "MATLAB",
			"Git",
		},
	},
	{
		Name:           "Game Developer",
		ExpectedSkills: []string{
			"C++", "C#", "Unity", "Unreal Engine", "OpenGL", "DirectX", "Python",
			"Git", "Lua", "Blender",
		},
	},
	{
		Name:           "Blockchain Developer",
		ExpectedSkills: []string{
			"Solidity", "Blockchain", "Web3", "Smart Contracts", "JavaScript",
			"TypeScript", "Node.js", "React", "Git", "Docker", "Ethereum",
		},
	},
	{
		Name:           "Database Administrator",
		ExpectedSkills: []string{
			"SQL", "PostgreSQL", "MySQL", "MongoDB", "Oracle", "Redis", "SQLite",
			"Data Modeling", "Linux", "Docker", "Python", "Shell",
		},
	},
	{
		Name:           "Systems Engineer",
		ExpectedSkills: []string{
			"C", "C++", "Linux", "Shell", "Bash", "Docker", "Kubernetes", "Nginx",
			"Embedded Systems", "IoT", "Networking", "Python", "Git",
		},
	},
	{
		Name:           "UI/UX Designer",
		ExpectedSkills: []string{
			"Figma", "Adobe XD", "Sketch", "CSS", "HTML", "JavaScript",
			"Tailwind CSS", "Bootstrap", "React", "Design Systems",
		},
	},
}
