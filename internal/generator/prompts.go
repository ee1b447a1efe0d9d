package generator

import (
	"fmt"
	"strings"
)

// AlgorithmPrompt asks for a numbered, step-by-step algorithm. The format
// example matches what the step parser expects.
func AlgorithmPrompt(question string) string {
	return fmt.Sprintf(`Generate a clear, step-by-step algorithm for: '%s'

Requirements:
1. Use numbered list format (1., 2., 3., etc.)
2. Each step should be clear and concise
3. Include decision points clearly (use "If", "Else", "While", "For")
4. Include input/output steps
5. Make it easy to follow the logic flow
6. Use proper programming terminology

Format example:
1. Start
2. Input: Get the number from user
3. If number %% 2 == 0
4. Output: "Number is even"
5. Else
6. Output: "Number is odd"
7. End

Generate the algorithm:`, strings.TrimSpace(question))
}

// FlowchartPrompt asks for a Mermaid flowchart of algorithm.
func FlowchartPrompt(algorithm string) string {
	return fmt.Sprintf(`Convert this algorithm into a Mermaid.js flowchart:

%s

Create a flowchart with these rules:
1. Start with: flowchart TD
2. Use simple node IDs: A, B, C, D, E, F, G, H, I, J
3. For decisions use: A{"condition"}
4. For processes use: A["action"]
5. For start/end use: A(["Start"]) or A(["End"])
6. Use arrows: A --> B
7. For yes/no branches: A -->|Yes| B and A -->|No| C
8. Keep labels short and clear
9. Follow the exact sequence of the algorithm

Example format:
flowchart TD
    A(["Start"])
    B["Input: Get number"]
    C{"number %% 2 == 0?"}
    D["Output: Even"]
    E["Output: Odd"]
    F(["End"])
    A --> B
    B --> C
    C -->|Yes| D
    C -->|No| E
    D --> F
    E --> F

Generate the flowchart:`, strings.TrimSpace(algorithm))
}

// CodePrompt asks for a minimal implementation of algorithm in language.
func CodePrompt(algorithm, language string) string {
	return fmt.Sprintf(`Write %[1]s code that implements this algorithm:

%[2]s

Rules:
1. Output only the code inside a single fenced code block
2. Use at most a few short comments
3. Do not add explanations, example usage or complexity notes
4. Use idiomatic %[1]s with consistent indentation

Generate the code:`, language, strings.TrimSpace(algorithm))
}
