package tracker

// Reporter is told about things worth showing the user while the tracker
// works. Implementations must not modify the results they receive.
type Reporter interface {
	Warn(msg string)
	Checking(name string)
	Checked(res CheckResult)
}

type NopReporter struct{}

func (NopReporter) Warn(string)         {}
func (NopReporter) Checking(string)     {}
func (NopReporter) Checked(CheckResult) {}
