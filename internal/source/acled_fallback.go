package source

import "time"

// fallbackConflicts returns a static conflict dataset in the ACLED record
// shape, used when no API credentials are configured. Event dates are
// derived from now so the records stay plausibly recent. The incidents
// mirror well-documented ongoing conflicts.
func fallbackConflicts(now time.Time) []acledRecord {
	day := func(minus int) string {
		return now.UTC().AddDate(0, 0, -minus).Format(acledDateLayout)
	}

	return []acledRecord{
		{
			EventIDCnty: "UKR10001", EventDate: day(0), EventType: "Battles", SubEventType: "Armed clash",
			Country: "Ukraine", Location: "Kharkiv", Latitude: "49.9", Longitude: "36.2",
			Fatalities: "12", Actor1: "Russian Armed Forces", Actor2: "Armed Forces of Ukraine",
			Notes: "Artillery exchanges along front lines. Urban combat reported.",
		},
		{
			EventIDCnty: "PSE10002", EventDate: day(0), EventType: "Explosions/Remote violence", SubEventType: "Air/drone strike",
			Country: "Gaza Strip", Location: "Gaza City", Latitude: "31.5", Longitude: "34.4",
			Fatalities: "34", Actor1: "Military Forces of Israel",
			Notes: "Multiple airstrikes on residential areas. Aid workers unable to access zone.",
		},
		{
			EventIDCnty: "YEM10003", EventDate: day(1), EventType: "Explosions/Remote violence", SubEventType: "Air/drone strike",
			Country: "Yemen", Location: "Red Sea", Latitude: "15.0", Longitude: "42.5",
			Fatalities: "0", Actor1: "Houthi Forces",
			Notes: "Commercial vessel hit by drone near Bab al-Mandab strait. No casualties.",
		},
		{
			EventIDCnty: "SDN10004", EventDate: day(1), EventType: "Battles", SubEventType: "Armed clash",
			Country: "Sudan", Location: "Khartoum", Latitude: "15.5", Longitude: "32.5",
			Fatalities: "28", Actor1: "Rapid Support Forces", Actor2: "Military Forces of Sudan",
			Notes: "Rapid Support Forces advance in residential district. 40,000 displaced this week.",
		},
		{
			EventIDCnty: "MMR10005", EventDate: day(2), EventType: "Battles", SubEventType: "Armed clash",
			Country: "Myanmar", Location: "Lashio", Latitude: "22.9", Longitude: "97.7",
			Fatalities: "9", Actor1: "Military Forces of Myanmar", Actor2: "Resistance Forces",
			Notes: "Junta airstrikes on resistance-held towns. Three villages evacuated.",
		},
		{
			EventIDCnty: "IRQ10006", EventDate: day(2), EventType: "Violence against civilians", SubEventType: "Remote explosive",
			Country: "Iraq", Location: "Baghdad", Latitude: "33.3", Longitude: "44.4",
			Fatalities: "4", Actor1: "Unidentified Armed Group",
			Notes: "IED detonation near government building. 4 wounded.",
		},
		{
			EventIDCnty: "GEO10007", EventDate: day(0), EventType: "Protests", SubEventType: "Peaceful protest",
			Country: "Georgia", Location: "Tbilisi", Latitude: "41.7", Longitude: "44.8",
			Fatalities: "0", Actor1: "Protesters (Georgia)",
			Notes: "Tens of thousands protest pro-Russia government pivot. Police deploy tear gas.",
		},
		{
			EventIDCnty: "SOM10008", EventDate: day(3), EventType: "Battles", SubEventType: "Armed clash",
			Country: "Somalia", Location: "Mogadishu", Latitude: "2.0", Longitude: "45.3",
			Fatalities: "7", Actor1: "Al Shabaab", Actor2: "Military Forces of Somalia",
			Notes: "Suicide bombing at checkpoint. 7 soldiers killed.",
		},
		{
			EventIDCnty: "HTI10009", EventDate: day(3), EventType: "Violence against civilians", SubEventType: "Attack",
			Country: "Haiti", Location: "Port-au-Prince", Latitude: "18.5", Longitude: "-72.3",
			Fatalities: "15", Actor1: "G9 Gang Coalition",
			Notes: "Gang faction controls most of the capital. Mass displacement ongoing.",
		},
		{
			EventIDCnty: "LBN10010", EventDate: day(1), EventType: "Battles", SubEventType: "Armed clash",
			Country: "Lebanon", Location: "South Lebanon", Latitude: "33.3", Longitude: "35.5",
			Fatalities: "3", Actor1: "Hezbollah", Actor2: "Military Forces of Israel",
			Notes: "Cross-border rocket exchange. Lebanese villages evacuated.",
		},
		{
			EventIDCnty: "UKR10011", EventDate: day(1), EventType: "Explosions/Remote violence", SubEventType: "Shelling/artillery/missile attack",
			Country: "Ukraine", Location: "Odesa", Latitude: "46.4", Longitude: "30.7",
			Fatalities: "2", Actor1: "Russian Armed Forces",
			Notes: "Cruise missile salvo targets port infrastructure. 2 killed, 8 wounded.",
		},
		{
			EventIDCnty: "MLI10012", EventDate: day(4), EventType: "Riots", SubEventType: "Mob violence",
			Country: "Mali", Location: "Bamako", Latitude: "12.6", Longitude: "-8.0",
			Fatalities: "0", Actor1: "Rioters (Mali)",
			Notes: "Pro-junta demonstrations. Opposition leaders arrested.",
		},
	}
}
