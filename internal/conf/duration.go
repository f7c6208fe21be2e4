package conf

import "time"

// Duration is a duration. It differs from the standard duration in that it is
// marshaled/unmarshaled from/to a human-readable string ("30s", "2m") instead
// of a raw integer of nanoseconds.
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var in string
	if err := unmarshal(&in); err != nil {
		return err
	}

	dur, err := time.ParseDuration(in)
	if err != nil {
		return err
	}

	*d = Duration(dur)
	return nil
}
