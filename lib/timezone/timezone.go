package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Rome")
	if err != nil {
		panic(err)
	}
}

// force the league's timezone no matter where the server runs, match
// days roll over on Italian local time
func Now() time.Time {
	return time.Now().In(Location)
}
