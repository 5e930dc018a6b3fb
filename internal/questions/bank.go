package questions

// questionsBySkill holds curated interview questions for common skills.
// Skills outside the bank are sent to the model.
var questionsBySkill = map[string][]string{
	"JavaScript": {
		"What is the difference between var, let and const?",
		"Explain how closures work in JavaScript.",
		"What is the event loop and how does it handle asynchronous code?",
	},
	"React": {
		"What is the virtual DOM and why does React use it?",
		"Explain the difference between state and props.",
		"What are hooks and what problem do they solve?",
	},
	"Python": {
		"What is the difference between a list and a tuple?",
		"Explain how Python's GIL affects multithreaded programs.",
		"What are decorators and when would you use one?",
	},
	"Go": {
		"How do goroutines differ from operating system threads?",
		"Explain how channels are used to coordinate concurrent work.",
		"What does the defer statement do and when does it run?",
	},
	"SQL": {
		"What is the difference between an INNER JOIN and a LEFT JOIN?",
		"When would you add an index to a table, and what is the cost?",
		"Explain what a transaction is and the guarantees it provides.",
	},
	"Node.js": {
		"How does Node.js handle concurrent requests with a single thread?",
		"What is the difference between require and import?",
		"Explain what middleware is in an Express application.",
	},
}

// skillAliases maps lowercased resume spellings to bank keys.
var skillAliases = map[string]string{
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"es6":        "JavaScript",
	"typescript": "JavaScript",
	"react":      "React",
	"reactjs":    "React",
	"react.js":   "React",
	"python":     "Python",
	"django":     "Python",
	"go":         "Go",
	"golang":     "Go",
	"sql":        "SQL",
	"postgresql": "SQL",
	"postgres":   "SQL",
	"mysql":      "SQL",
	"node":       "Node.js",
	"nodejs":     "Node.js",
	"node.js":    "Node.js",
	"express":    "Node.js",
}
