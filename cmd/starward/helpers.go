package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
)

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func (a *app) prec() output.Precision {
	return a.render.Precision()
}

// addRA adds a right ascension as HMS, with degrees in JSON.
func (a *app) addRA(res *output.Result, key, label string, ra astro.Angle) {
	p := a.prec()
	res.Add(key, label, ra.Degrees(), p.HMS(ra)+"  ("+p.Degrees(ra)+")")
}

// addDec adds a declination or latitude-like angle as DMS.
func (a *app) addDec(res *output.Result, key, label string, dec astro.Angle) {
	p := a.prec()
	res.Add(key, label, dec.Degrees(), p.DMS(dec)+"  ("+p.SignedDegrees(dec)+")")
}

// addDegrees adds an angle in decimal degrees.
func (a *app) addDegrees(res *output.Result, key, label string, v astro.Angle) {
	res.Add(key, label, v.Degrees(), a.prec().Degrees(v))
}

// addFloat adds a number with an optional unit suffix.
func (a *app) addFloat(res *output.Result, key, label string, v float64, unit string) {
	text := a.prec().Float(v)
	if unit != "" {
		text += " " + unit
	}
	res.Add(key, label, v, text)
}

// addEvent adds a solved instant. JSON carries RFC 3339 UTC or null; text
// carries UTC plus the observer's local clock time when it has a zone.
func (a *app) addEvent(res *output.Result, key, label string, e astro.Event, obs astro.Observer) {
	if !e.OK {
		res.Add(key, label, nil, "none in the next 24 h")
		return
	}
	res.Add(key, label, e.Time().Format(time.RFC3339), a.eventText(e, obs))
}

func (a *app) eventText(e astro.Event, obs astro.Observer) string {
	text := a.prec().Event(e)
	if !e.OK || obs.Timezone == "" {
		return text
	}
	if loc, err := obs.Location(); err == nil {
		text += "  (" + e.Time().In(loc).Format("15:04 MST") + ")"
	} else {
		a.log.Warn("%v", err)
	}
	return text
}

// addRiseSet adds the rise, transit and set of one body.
func (a *app) addRiseSet(res *output.Result, ev astro.RiseSetTimes, obs astro.Observer) {
	a.addEvent(res, "rise", "Rise", ev.Rise, obs)
	a.addEvent(res, "transit", "Transit", ev.Transit, obs)
	a.addEvent(res, "set", "Set", ev.Set, obs)
	res.Add("transit_altitude", "Transit altitude", ev.TransitAltitude.Degrees(), a.prec().SignedDegrees(ev.TransitAltitude))
	switch {
	case ev.Circumpolar:
		res.Add("circumpolar", "Circumpolar", true, "yes, never sets")
	case ev.NeverRises:
		res.Add("never_rises", "Never rises", true, "yes, stays below the horizon")
	}
}

// addHorizontal adds altitude and azimuth.
func (a *app) addHorizontal(res *output.Result, hz astro.HorizontalCoord) {
	p := a.prec()
	res.Add("altitude", "Altitude", hz.Alt.Degrees(), p.SignedDegrees(hz.Alt))
	res.Add("azimuth", "Azimuth", hz.Az.Degrees(), p.Degrees(hz.Az))
}

// addObserver adds the site a result was computed for.
func addObserver(res *output.Result, obs astro.Observer) {
	res.Add("observer", "Observer", obs.ToMap(), obs.String())
}
