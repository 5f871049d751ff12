package domain

import "fmt"

// ProgressField names one per-lesson score slot on the learner's progress page.
type ProgressField string

const (
	ProgressDecomposition  ProgressField = "decompositionScore"
	ProgressPattern        ProgressField = "patternScore"
	ProgressAbstraction    ProgressField = "abstractionScore"
	ProgressAlgorithm      ProgressField = "algorithmScore"
	ProgressIntro          ProgressField = "introScore"
	ProgressReview         ProgressField = "reviewScore"
	ProgressEmail          ProgressField = "emailScore"
	ProgressBeyond         ProgressField = "beyondScore"
	ProgressPythonOne      ProgressField = "pythonOneScore"
	ProgressPythonTwo      ProgressField = "pythonTwoScore"
	ProgressPythonThree    ProgressField = "pythonThreeScore"
	ProgressPythonFive     ProgressField = "pythonFiveScore"
	ProgressPythonSix      ProgressField = "pythonSixScore"
	ProgressPythonSeven    ProgressField = "pythonSevenScore"
	ProgressMainframeOne   ProgressField = "mainframeOneScore"
	ProgressMainframeTwo   ProgressField = "mainframeTwoScore"
	ProgressMainframeThree ProgressField = "mainframeThreeScore"
	ProgressMainframeFour  ProgressField = "mainframeFourScore"
	ProgressMainframeFive  ProgressField = "mainframeFiveScore"
	ProgressMainframeSix   ProgressField = "mainframeSixScore"
	ProgressCobolTwo       ProgressField = "cobolTwoScore"
	ProgressCobolThree     ProgressField = "cobolThreeScore"
	ProgressCobolFour      ProgressField = "cobolFourScore"
	ProgressCobolSix       ProgressField = "cobolSixScore"
)

var progressFields = []ProgressField{
	ProgressDecomposition, ProgressPattern, ProgressAbstraction, ProgressAlgorithm,
	ProgressIntro, ProgressReview, ProgressEmail, ProgressBeyond,
	ProgressPythonOne, ProgressPythonTwo, ProgressPythonThree,
	ProgressPythonFive, ProgressPythonSix, ProgressPythonSeven,
	ProgressMainframeOne, ProgressMainframeTwo, ProgressMainframeThree,
	ProgressMainframeFour, ProgressMainframeFive, ProgressMainframeSix,
	ProgressCobolTwo, ProgressCobolThree, ProgressCobolFour, ProgressCobolSix,
}

// ProgressFieldFor maps a quiz type to its progress slot. Unknown types are rejected.
func ProgressFieldFor(quizType string) (ProgressField, error) {
	switch quizType {
	case "decomposition":
		return ProgressDecomposition, nil
	case "pattern-recognition":
		return ProgressPattern, nil
	case "abstraction":
		return ProgressAbstraction, nil
	case "algorithms":
		return ProgressAlgorithm, nil
	case "intro":
		return ProgressIntro, nil
	case "review":
		return ProgressReview, nil
	case "email":
		return ProgressEmail, nil
	case "beyond":
		return ProgressBeyond, nil
	case "python1":
		return ProgressPythonOne, nil
	case "python2":
		return ProgressPythonTwo, nil
	case "python3":
		return ProgressPythonThree, nil
	case "python5":
		return ProgressPythonFive, nil
	case "python6":
		return ProgressPythonSix, nil
	case "python7":
		return ProgressPythonSeven, nil
	case "mainframe1":
		return ProgressMainframeOne, nil
	case "mainframe2":
		return ProgressMainframeTwo, nil
	case "mainframe3":
		return ProgressMainframeThree, nil
	case "mainframe4":
		return ProgressMainframeFour, nil
	case "mainframe5":
		return ProgressMainframeFive, nil
	case "mainframe6":
		return ProgressMainframeSix, nil
	case "cobol2":
		return ProgressCobolTwo, nil
	case "cobol3":
		return ProgressCobolThree, nil
	case "cobol4":
		return ProgressCobolFour, nil
	case "cobol6":
		return ProgressCobolSix, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuizType, quizType)
	}
}
