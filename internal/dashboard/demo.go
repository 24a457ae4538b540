package dashboard

import "time"

// DemoData returns the rows the seeder loads into an empty dashboard.
func DemoData(now time.Time) ([]Metric, []Alert, []User) {
	metrics := []Metric{
		{Name: "Active Sessions", Value: NumberValue(1247), Change: 12.5, Trend: TrendUp},
		{Name: "Avg Session Duration", Value: TextValue("3m 24s"), Change: -8.2, Trend: TrendDown},
		{Name: "Bounce Rate", Value: TextValue("42%"), Change: -5.1, Trend: TrendDown},
		{Name: "Conversion Rate", Value: TextValue("3.8%"), Change: 15.3, Trend: TrendUp},
		{Name: "Page Load Time", Value: TextValue("2.1s"), Change: -12.4, Trend: TrendDown},
		{Name: "Error Rate", Value: TextValue("0.3%"), Change: -25.0, Trend: TrendDown},
	}

	alerts := []Alert{
		{
			ID:               "alert_1",
			Type:             "performance",
			Severity:         SeverityHigh,
			Title:            "Slow Page Load Detected",
			Description:      "Homepage loading time increased by 45% in the last hour",
			Timestamp:        now.Add(-30 * time.Minute),
			AffectedSessions: 124,
		},
		{
			ID:               "alert_2",
			Type:             "frustration",
			Severity:         SeverityMedium,
			Title:            "High Rage Click Activity",
			Description:      "Users are repeatedly clicking on non-functional elements on the contact page",
			Timestamp:        now.Add(-time.Hour),
			AffectedSessions: 67,
		},
		{
			ID:               "alert_3",
			Type:             "error",
			Severity:         SeverityCritical,
			Title:            "JavaScript Error Spike",
			Description:      "Uncaught TypeError affecting checkout process",
			Timestamp:        now.Add(-2 * time.Hour),
			Resolved:         true,
			AffectedSessions: 89,
		},
	}

	users := []User{
		{
			ID:        "usr_admin",
			Name:      "Sarah Chen",
			Email:     "sarah@example.com",
			Role:      "admin",
			LastLogin: now,
		},
	}

	return metrics, alerts, users
}
