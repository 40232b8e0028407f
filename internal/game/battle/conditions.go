package battle

// Weather is the field-wide weather.
type Weather int

const (
	WeatherNone Weather = iota
	WeatherSun
	WeatherRain
	WeatherSandstorm
	WeatherHail
	WeatherSnow
	WeatherFog
	WeatherExtremeSun
	WeatherHeavyRain
	WeatherStrongWinds
)

var weatherNames = [...]string{"none", "sun", "rain", "sandstorm", "hail", "snow", "fog", "extreme_sun", "heavy_rain", "strong_winds"}

func (w Weather) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return "unknown"
}

// Strong reports whether the weather can only be replaced by another strong
// weather.
func (w Weather) Strong() bool {
	return w == WeatherExtremeSun || w == WeatherHeavyRain || w == WeatherStrongWinds
}

// Terrain is the field-wide terrain.
type Terrain int

const (
	TerrainNone Terrain = iota
	TerrainElectric
	TerrainGrassy
	TerrainMisty
	TerrainPsychic
)

var terrainNames = [...]string{"none", "electric", "grassy", "misty", "psychic"}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// PermanentTurns marks a weather or terrain that never wears off.
const PermanentTurns = -1

// Conditions is the shared field state: at most one weather and at most one
// terrain, each with its remaining turns.
type Conditions struct {
	weather      Weather
	weatherTurns int
	terrain      Terrain
	terrainTurns int
}

// Weather returns the active weather, WeatherNone if clear.
func (c *Conditions) Weather() Weather { return c.weather }

// WeatherTurns returns the remaining weather turns, or PermanentTurns.
func (c *Conditions) WeatherTurns() int { return c.weatherTurns }

// IsWeather reports whether w is the active weather.
func (c *Conditions) IsWeather(w Weather) bool { return c.weather == w }

// Sunny reports sun or extreme sun.
func (c *Conditions) Sunny() bool {
	return c.weather == WeatherSun || c.weather == WeatherExtremeSun
}

// Rainy reports rain or heavy rain.
func (c *Conditions) Rainy() bool {
	return c.weather == WeatherRain || c.weather == WeatherHeavyRain
}

// Snowy reports hail or snow.
func (c *Conditions) Snowy() bool {
	return c.weather == WeatherHail || c.weather == WeatherSnow
}

// SetWeather replaces the weather for turns turns (or PermanentTurns).
// A strong weather is only replaced by another strong weather, and setting
// the weather that is already active does not reset its duration.
//
// Postcondition: returns true iff the weather changed.
func (c *Conditions) SetWeather(w Weather, turns int) bool {
	if w == WeatherNone {
		return false
	}
	if c.weather == w {
		return false
	}
	if c.weather.Strong() && !w.Strong() {
		return false
	}
	c.weather = w
	c.weatherTurns = turns
	return true
}

// ClearWeather removes any weather, strong included.
func (c *Conditions) ClearWeather() {
	c.weather = WeatherNone
	c.weatherTurns = 0
}

// Terrain returns the active terrain, TerrainNone if clear.
func (c *Conditions) Terrain() Terrain { return c.terrain }

// TerrainTurns returns the remaining terrain turns, or PermanentTurns.
func (c *Conditions) TerrainTurns() int { return c.terrainTurns }

// IsTerrain reports whether t is the active terrain.
func (c *Conditions) IsTerrain(t Terrain) bool { return c.terrain == t }

// SetTerrain replaces the terrain. Setting the active terrain again is a
// no-op.
//
// Postcondition: returns true iff the terrain changed.
func (c *Conditions) SetTerrain(t Terrain, turns int) bool {
	if t == TerrainNone || c.terrain == t {
		return false
	}
	c.terrain = t
	c.terrainTurns = turns
	return true
}

// ClearTerrain removes any terrain.
func (c *Conditions) ClearTerrain() {
	c.terrain = TerrainNone
	c.terrainTurns = 0
}

// Tick advances weather and terrain by one turn, clearing each when its
// counter reaches zero. Permanent conditions are untouched.
//
// Postcondition: returns which of weather and terrain ended this tick.
func (c *Conditions) Tick() (weatherEnded, terrainEnded bool) {
	if c.weather != WeatherNone && c.weatherTurns != PermanentTurns {
		c.weatherTurns--
		if c.weatherTurns <= 0 {
			c.ClearWeather()
			weatherEnded = true
		}
	}
	if c.terrain != TerrainNone && c.terrainTurns != PermanentTurns {
		c.terrainTurns--
		if c.terrainTurns <= 0 {
			c.ClearTerrain()
			terrainEnded = true
		}
	}
	return weatherEnded, terrainEnded
}
