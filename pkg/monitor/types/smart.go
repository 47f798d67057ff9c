// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

// SmartAttribute mirrors one row of smartctl's ata_smart_attributes.table.
type SmartAttribute struct {
	ID         int
	Name       string
	Value      int // normalized, 0-255
	Worst      int
	Thresh     int
	Prefail    bool
	RawValue   uint64
	RawString  string
	WhenFailed string
}

// AtRisk reports whether a prefail attribute is near its failure threshold:
// prefail ∧ thresh > 0 ∧ value ≤ thresh + 10.
func (a SmartAttribute) AtRisk() bool {
	return a.Prefail && a.Thresh > 0 && a.Value <= a.Thresh+10
}

// NvmeHealth mirrors smartctl's nvme_smart_health_information_log.
type NvmeHealth struct {
	CriticalWarning         uint8
	Temperature             int
	AvailableSparePct       int
	AvailableSpareThreshold int
	PercentageUsed          int
	DataUnitsRead           uint64 // each unit is 512000 bytes
	DataUnitsWritten        uint64
	PowerOnHours            uint64
	UnsafeShutdowns         uint64
	MediaErrors             uint64
	NumErrLogEntries        uint64
}

// NvmeDataUnitBytes is the byte value of one NVMe "data unit" (1000 × 512).
const NvmeDataUnitBytes = 512000

// SmartData is the normalized SMART telemetry snapshot for one device.
type SmartData struct {
	Status       SmartStatus
	Temperature  *int
	PowerOnHours *uint64
	Attributes   []SmartAttribute
	Nvme         *NvmeHealth
}

// DeriveStatus downgrades Passed to Warning when any risk signal is present;
// Failed is never upgraded.
func (s *SmartData) DeriveStatus() {
	if s.Status != SmartPassed {
		return
	}
	if s.hasAtRiskAttribute() || s.hasNvmeRisk() {
		s.Status = SmartWarning
	}
}

func (s *SmartData) hasAtRiskAttribute() bool {
	for _, a := range s.Attributes {
		if a.AtRisk() {
			return true
		}
	}
	return false
}

func (s *SmartData) hasNvmeRisk() bool {
	if s.Nvme == nil {
		return false
	}
	n := s.Nvme
	return n.CriticalWarning != 0 ||
		n.MediaErrors > 0 ||
		n.AvailableSparePct < n.AvailableSpareThreshold
}

// HealthScore computes a 0-100 composite health score from SMART status,
// at-risk attribute count, temperature headroom, and NVMe wear/critical
// signals. It is independent of the alert evaluator: the persisted
// health-history store records this score, not raw alert output.
func (s *SmartData) HealthScore(rotational bool) int {
	score := 100

	switch s.Status {
	case SmartFailed:
		score -= 30
	case SmartWarning:
		score -= 15
	}

	atRisk := 0
	for _, a := range s.Attributes {
		if a.AtRisk() {
			atRisk++
		}
	}
	if atRisk > 5 {
		atRisk = 5
	}
	score -= atRisk * 10

	if s.Temperature != nil {
		warnC, _ := TemperatureThresholds(rotational)
		over := *s.Temperature - warnC
		if over > 0 {
			score -= 5 * (over / 10)
		}
	}

	if s.Nvme != nil {
		if s.Nvme.CriticalWarning != 0 {
			score -= 20
		}
		score -= s.Nvme.PercentageUsed / 2
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// TemperatureThresholds returns (warn, crit) in °C for a device's rotational
// flag: HDD = (50, 60), non-HDD = (55, 70).
func TemperatureThresholds(rotational bool) (warnC, critC int) {
	if rotational {
		return 50, 60
	}
	return 55, 70
}
