package prompt

import "fmt"

// Window is a contiguous span of hours to generate in one request.
// StartHour and EndHour are inclusive; minutes within each hour step
// by MinuteStep starting at 0.
type Window struct {
	StartHour  int
	EndHour    int
	MinuteStep int
}

// FullDay returns the single window covering hours 0-23.
func FullDay(minuteStep int) Window {
	return Window{StartHour: 0, EndHour: 23, MinuteStep: minuteStep}
}

// Halves returns the two standard 12-hour windows.
func Halves(minuteStep int) []Window {
	return []Window{
		{StartHour: 0, EndHour: 11, MinuteStep: minuteStep},
		{StartHour: 12, EndHour: 23, MinuteStep: minuteStep},
	}
}

// Split divides the day into consecutive windows of chunkHours each;
// the last window absorbs any remainder.
func Split(chunkHours, minuteStep int) []Window {
	if chunkHours <= 0 || chunkHours >= 24 {
		return []Window{FullDay(minuteStep)}
	}
	var out []Window
	for start := 0; start < 24; start += chunkHours {
		end := start + chunkHours - 1
		if 24-(end+1) < chunkHours {
			end = 23
		}
		out = append(out, Window{StartHour: start, EndHour: end, MinuteStep: minuteStep})
		if end == 23 {
			break
		}
	}
	return out
}

// Hours returns the number of hours the window covers.
func (w Window) Hours() int {
	return w.EndHour - w.StartHour + 1
}

// EntriesPerHour returns how many minute entries each hour contains.
func (w Window) EntriesPerHour() int {
	step := w.MinuteStep
	if step <= 0 {
		step = 1
	}
	return (59 / step) + 1
}

// Contains reports whether hour falls inside the window.
func (w Window) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// String renders the window as an hour range for logs and errors.
func (w Window) String() string {
	return fmt.Sprintf("hours %02d-%02d", w.StartHour, w.EndHour)
}
