package types

// ConsoleInterface abstracts terminal output so the use case can be tested
// without writing to a real terminal.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})
	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
	PrintTable(headers []string, rows [][]string)
}
