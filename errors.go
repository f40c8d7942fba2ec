package cropforest

// Error represents an error returned by the forest public operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrInvalidInput is returned when training data, a feature vector or the
forest hyperparameters are not acceptable: an empty training set, a
non-finite feature value, an unknown soil type or an empty label.
*/
const ErrInvalidInput = Error("invalid input")

/*
ErrModelNotTrained is returned when predicting with a forest that has no
trees.
*/
const ErrModelNotTrained = Error("model not trained")
