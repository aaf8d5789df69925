package dash

import tea "github.com/charmbracelet/bubbletea"

// apply performs one state transition for one event. It is the only
// place the model is mutated after construction; the Dashboard calls it
// exactly once per received event, before the runtime repaints.
func apply(m *Model, msg tea.Msg) {
	switch msg := msg.(type) {
	case BuildFileMsg:
		m.SetBuilding(msg.Path, msg.Building)

	case WorkerOutputMsg:
		w := m.Worker(msg.ID)
		w.Output += msg.Chunk

	case WorkerStateMsg:
		w := m.Worker(msg.ID)
		if msg.State != nil {
			w.State = msg.State
		}

	case WorkerDoneMsg:
		// Unknown ids are created here too: a completion arriving before
		// any output must not crash the dashboard.
		w := m.Worker(msg.ID)
		w.State = &Badge{Label: "DONE", Color: "green"}
		w.Done = true
		w.setErr(msg.Err)

	case WorkerResetMsg:
		m.ResetWorker(msg.ID)

	case ConsoleMsg:
		m.AppendConsole(msg.Level, msg.Lines...)

	case ServerStartMsg:
		m.Server = &ServerInfo{
			StartTime: msg.StartTime,
			Hostname:  msg.Hostname,
			Port:      msg.Port,
			Protocol:  msg.Protocol,
			IPs:       msg.IPs,
		}

	case InstallOutputMsg:
		m.Installing = true
		m.InstallOutput += msg.Chunk

	case InstallDoneMsg:
		m.Installing = false
	}
}
